// Package item models serialized content-tree items and the helpers used to
// create, parse, format and patch them.
//
// An item record is a YAML document carrying the identity of the item (ID,
// Template, DB), its place in the tree (Parent, Path) and its field values,
// either shared across languages or versioned per language.
package item

// Field is a single field value on an item.
//
// Value holds either a string or an int, matching what the YAML decoder
// produces for scalar values.
type Field struct {
	ID     string `yaml:"ID"`
	Hint   string `yaml:"Hint,omitempty"`
	Value  any    `yaml:"Value"`
	BlobID string `yaml:"BlobID,omitempty"`

	// Extra keeps keys this package does not know about across a round trip.
	Extra map[string]any `yaml:",inline"`
}

// Version is one revision of an item's content in a language.
type Version struct {
	Version int      `yaml:"Version"`
	Fields  []*Field `yaml:"Fields"`

	Extra map[string]any `yaml:",inline"`
}

// Language holds the versions of an item for a language.
type Language struct {
	Language string     `yaml:"Language"`
	Versions []*Version `yaml:"Versions"`

	Extra map[string]any `yaml:",inline"`
}

// Item is a content-tree record.
//
// Items created by a Factory are orphans: Parent and Path are empty until
// Reparent links them to a parent.
type Item struct {
	ID           string      `yaml:"ID"`
	Parent       string      `yaml:"Parent"`
	Template     string      `yaml:"Template"`
	Path         string      `yaml:"Path"`
	DB           string      `yaml:"DB"`
	SharedFields []*Field    `yaml:"SharedFields"`
	Languages    []*Language `yaml:"Languages"`

	Extra map[string]any `yaml:",inline"`
}

// Reference is the minimal view of an item needed to place a child under it.
type Reference struct {
	ID   string
	Path string
}

// Reference returns the reference to this item.
func (it *Item) Reference() Reference {
	return Reference{ID: it.ID, Path: it.Path}
}

// SharedField returns the shared field matching idOrHint, or nil.
func (it *Item) SharedField(idOrHint string) *Field {
	return FindField(it.SharedFields, idOrHint)
}
