package config

import (
	"path/filepath"
	"strings"

	"github.com/maruel/unicorn/internal/item"
	"github.com/maruel/unicorn/internal/transform"
)

// Options converts the configuration into transform options.
func (c *Config) Options() transform.Options {
	opts := transform.Options{
		Create: item.CreateOptions{DB: c.DB, Language: c.Language, CreatedBy: c.CreatedBy},
	}
	if c.OutputPath != "" {
		opts.OutputPath = transform.OutputDir(c.OutputPath)
	}
	switch {
	case c.Parent != nil:
		opts.ParentItem = transform.ParentRef(item.Reference{ID: c.Parent.ID, Path: c.Parent.Path})
	case c.ParentItem != "":
		opts.ParentItem = transform.ParentPath(c.ParentItem)
	}
	if len(c.Types) > 0 {
		opts.FileTypeInfo = c.fileTypeInfo
	}
	if len(c.Fields) > 0 {
		opts.PopulateItem = c.populate
	}
	return opts
}

func (c *Config) fileTypeInfo(filename string, def transform.FileTypeInfo) *transform.FileTypeInfo {
	t, ok := c.Types[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil
	}
	if t.MimeType != "" {
		def.MimeType = t.MimeType
	}
	if t.Icon != "" {
		def.Icon = t.Icon
	}
	if t.Template != "" {
		def.TemplateID = t.Template
	}
	if t.Extension != "" {
		def.Extension = t.Extension
	}
	return &def
}

func (c *Config) populate(it *item.Item) {
	for _, f := range c.Fields {
		it.SharedFields = item.UpsertField(it.SharedFields, &item.Field{ID: f.ID, Hint: f.Hint, Value: f.Value})
	}
}
