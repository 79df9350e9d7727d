package transform

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/maruel/unicorn/internal/errors"
	"github.com/maruel/unicorn/internal/item"
)

// File is an asset flowing through the pipeline.
type File struct {
	Path     string
	Contents []byte
}

// Store loads and persists item records.
type Store interface {
	ItemExists(path string) (bool, error)
	ReadItem(path string) (*item.Item, error)
	WriteItem(path string, it *item.Item) error
}

// Result describes the item produced for one file.
type Result struct {
	Source      string
	OutputPath  string
	ItemID      string
	ItemPath    string
	Created     bool
	BlobChanged bool
}

// Transformer converts files into items.
//
// Factory and Sync may be replaced before use, e.g. to inject deterministic
// identifiers and clocks.
type Transformer struct {
	Options Options
	Store   Store
	Sink    Sink
	Factory *item.Factory
	Sync    *Synchronizer
	Logger  *slog.Logger
}

// New returns a Transformer with random identifiers and the wall clock.
func New(opts Options, store Store, sink Sink) *Transformer {
	return &Transformer{
		Options: opts,
		Store:   store,
		Sink:    sink,
		Factory: &item.Factory{},
		Sync:    &Synchronizer{},
		Logger:  slog.Default(),
	}
}

// UseIDs makes both new items and new blobs draw identifiers from ids and
// timestamps from now.
func (t *Transformer) UseIDs(ids item.IDSource, now item.Clock) {
	t.Factory = &item.Factory{NewID: ids, Now: now}
	t.Sync = &Synchronizer{NewID: ids}
}

// resolution is the per-file outcome of option resolution.
type resolution struct {
	info       FileTypeInfo
	parent     ParentTarget
	outputPath string
}

// Transform processes f and emits its item through the Sink.
func (t *Transformer) Transform(ctx context.Context, f *File) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := t.resolve(filepath.Base(f.Path))
	if err != nil {
		return nil, err
	}
	parent, err := t.loadParent(r)
	if err != nil {
		return nil, err
	}
	t.Logger.DebugContext(ctx, "Resolved item", "file", f.Path, "name", r.info.Name, "parent", parent.Path, "output", r.outputPath)

	target, created, err := t.targetItem(r)
	if err != nil {
		return nil, err
	}
	item.Reparent(target, parent, r.info.Name)
	sr := t.Sync.Sync(target, f.Contents, r.info, t.Options.PopulateItem)

	if err := t.Sink.Emit(ctx, f, target, r.outputPath); err != nil {
		return nil, err
	}
	res := &Result{
		Source:      f.Path,
		OutputPath:  r.outputPath,
		ItemID:      target.ID,
		ItemPath:    target.Path,
		Created:     created,
		BlobChanged: sr.BlobChanged,
	}
	t.Logger.InfoContext(ctx, "Emitted item", "file", f.Path, "path", res.ItemPath, "created", res.Created, "blobChanged", res.BlobChanged)
	return res, nil
}

// FileTypeInfo returns the type info used for filename, after overrides.
func (t *Transformer) FileTypeInfo(filename string) FileTypeInfo {
	info := DefaultFileTypeInfo(filename)
	if t.Options.FileTypeInfo != nil {
		if o := t.Options.FileTypeInfo(filename, info); o != nil {
			return *o
		}
	}
	return info
}

func (t *Transformer) resolve(filename string) (*resolution, error) {
	r := &resolution{info: t.FileTypeInfo(filename)}
	var outputDir string
	hasOutput := t.Options.OutputPath != nil
	if hasOutput {
		outputDir = t.Options.OutputPath.resolve(r.info)
	}
	switch {
	case t.Options.ParentItem != nil:
		r.parent = t.Options.ParentItem.resolve(r.info)
	case hasOutput:
		r.parent = ParentTarget{Path: item.ParentRecordPath(filepath.Join(outputDir, r.info.Filename))}
	default:
		return nil, errors.UnresolvedParent(r.info.Filename)
	}

	switch {
	case hasOutput:
		r.outputPath = filepath.Join(outputDir, r.info.Filename)
	case r.parent.IsPath():
		// Children of a record live in a directory named after it.
		dir := filepath.Dir(r.parent.Path)
		stem := strings.TrimSuffix(filepath.Base(r.parent.Path), filepath.Ext(r.parent.Path))
		r.outputPath = filepath.Join(dir, stem, r.info.Filename)
	}
	return r, nil
}

func (t *Transformer) loadParent(r *resolution) (item.Reference, error) {
	if !r.parent.IsPath() {
		return *r.parent.Ref, nil
	}
	ok, err := t.Store.ItemExists(r.parent.Path)
	if err != nil {
		return item.Reference{}, fmt.Errorf("failed to load parent item: %w", err)
	}
	if !ok {
		return item.Reference{}, errors.ParentNotFound(r.info.Filename, r.parent.Path)
	}
	p, err := t.Store.ReadItem(r.parent.Path)
	if err != nil {
		return item.Reference{}, fmt.Errorf("failed to load parent item: %w", err)
	}
	return p.Reference(), nil
}

func (t *Transformer) targetItem(r *resolution) (*item.Item, bool, error) {
	if r.outputPath != "" {
		ok, err := t.Store.ItemExists(r.outputPath)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load item: %w", err)
		}
		if ok {
			it, err := t.Store.ReadItem(r.outputPath)
			if err != nil {
				return nil, false, fmt.Errorf("failed to load item: %w", err)
			}
			return it, false, nil
		}
	}
	return t.Factory.Create(r.info.TemplateID, t.Options.Create), true, nil
}
