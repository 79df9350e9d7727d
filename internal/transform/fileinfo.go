package transform

import (
	"path/filepath"
	"strings"

	"github.com/maruel/unicorn/internal/item"
)

// FileTypeInfo describes how an asset file maps onto an item.
type FileTypeInfo struct {
	// Filename is the record file name, the asset base name with a .yml extension.
	Filename string
	// Name is the item name, derived from the asset stem.
	Name string
	// Extension is the asset extension without the leading dot.
	Extension  string
	MimeType   string
	TemplateID string
	// Icon is optional; when set the item icon field is written.
	Icon string
}

// RecordExt is the extension of serialized item records.
const RecordExt = ".yml"

// DefaultMimeType is used for extensions missing from KnownMimeTypes.
const DefaultMimeType = "application/octet-stream"

// KnownMimeTypes maps asset extensions to the MIME type written on the item.
var KnownMimeTypes = map[string]string{
	".js":  "application/x-javascript",
	".css": "text/css",
	".map": "application/json",
}

// DefaultFileTypeInfo returns the type info derived from an asset file name.
func DefaultFileTypeInfo(filename string) FileTypeInfo {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if ext == base {
		// Dot files such as ".htaccess" have no extension.
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)
	mimeType, ok := KnownMimeTypes[strings.ToLower(ext)]
	if !ok {
		mimeType = DefaultMimeType
	}
	return FileTypeInfo{
		Filename:   stem + RecordExt,
		Name:       item.SanitizeName(stem),
		Extension:  strings.TrimPrefix(ext, "."),
		MimeType:   mimeType,
		TemplateID: item.TemplateFile,
	}
}

// changeExt replaces the extension of p with ext.
func changeExt(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}
