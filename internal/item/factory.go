package item

import "time"

// Defaults applied by Factory.Create for zero CreateOptions fields.
const (
	DefaultDB        = "master"
	DefaultLanguage  = "en"
	DefaultCreatedBy = `sitecore\admin`
)

// CreateOptions customizes a new item.
type CreateOptions struct {
	DB        string
	Language  string
	CreatedBy string
}

// Factory mints new orphan items.
//
// NewID and Now default to NewID and time.Now when nil.
type Factory struct {
	NewID IDSource
	Now   Clock
}

// Create returns a new orphan item using templateID.
//
// The item has no parent, no path, no shared fields, and a single language
// with a single version holding the creation timestamp and author.
func (f *Factory) Create(templateID string, opts CreateOptions) *Item {
	if opts.DB == "" {
		opts.DB = DefaultDB
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.CreatedBy == "" {
		opts.CreatedBy = DefaultCreatedBy
	}
	return &Item{
		ID:           f.newID(),
		Parent:       "",
		Template:     templateID,
		Path:         "",
		DB:           opts.DB,
		SharedFields: []*Field{},
		Languages: []*Language{
			{
				Language: opts.Language,
				Versions: []*Version{f.newVersion(1, opts.CreatedBy)},
			},
		},
	}
}

func (f *Factory) newVersion(version int, createdBy string) *Version {
	return &Version{
		Version: version,
		Fields: []*Field{
			{ID: FieldCreated, Hint: HintCreated, Value: FormatTimestamp(f.now())},
			{ID: FieldCreatedBy, Hint: HintCreatedBy, Value: createdBy},
		},
	}
}

func (f *Factory) newID() string {
	if f.NewID != nil {
		return f.NewID()
	}
	return NewID()
}

func (f *Factory) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
