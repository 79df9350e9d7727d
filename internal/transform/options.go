package transform

import (
	"github.com/maruel/unicorn/internal/item"
)

// FileTypeInfoFunc overrides the type info of an asset. Returning nil keeps
// def unchanged.
type FileTypeInfoFunc func(filename string, def FileTypeInfo) *FileTypeInfo

// PopulateFunc mutates a fully synchronized item before it is emitted.
type PopulateFunc func(it *item.Item)

// Options configures a Transformer. All fields are optional, but either
// OutputPath or ParentItem is needed to place items in the tree.
type Options struct {
	// OutputPath is the directory receiving item records.
	OutputPath *PathOption
	// ParentItem selects the parent of generated items.
	ParentItem *ParentOption
	// FileTypeInfo overrides the type info derived from the asset name.
	FileTypeInfo FileTypeInfoFunc
	// PopulateItem runs last, after all default fields are written.
	PopulateItem PopulateFunc
	// Create customizes items that do not exist yet.
	Create item.CreateOptions
}

// PathOption is a literal directory or a function deriving one from the
// file type info.
type PathOption struct {
	dir string
	fn  func(FileTypeInfo) string
}

// OutputDir returns a PathOption always resolving to dir.
func OutputDir(dir string) *PathOption {
	return &PathOption{dir: dir}
}

// OutputFunc returns a PathOption resolved by fn for each file.
func OutputFunc(fn func(FileTypeInfo) string) *PathOption {
	return &PathOption{fn: fn}
}

func (o *PathOption) resolve(info FileTypeInfo) string {
	if o.fn != nil {
		return o.fn(info)
	}
	return o.dir
}

// ParentTarget is a resolved parent selection: either the path of a parent
// record to load, or a reference used as is.
type ParentTarget struct {
	Path string
	Ref  *item.Reference
}

// IsPath reports whether the target names a record file.
func (t ParentTarget) IsPath() bool {
	return t.Ref == nil
}

// ParentOption selects the parent item of generated items.
type ParentOption struct {
	target ParentTarget
	fn     func(FileTypeInfo) ParentTarget
}

// ParentPath returns a ParentOption loading the parent record at path.
func ParentPath(path string) *ParentOption {
	return &ParentOption{target: ParentTarget{Path: path}}
}

// ParentRef returns a ParentOption using ref without loading anything.
func ParentRef(ref item.Reference) *ParentOption {
	return &ParentOption{target: ParentTarget{Ref: &ref}}
}

// ParentFunc returns a ParentOption resolved by fn for each file.
func ParentFunc(fn func(FileTypeInfo) ParentTarget) *ParentOption {
	return &ParentOption{fn: fn}
}

func (o *ParentOption) resolve(info FileTypeInfo) ParentTarget {
	if o.fn != nil {
		return o.fn(info)
	}
	return o.target
}
