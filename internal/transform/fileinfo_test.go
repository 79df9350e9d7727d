package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maruel/unicorn/internal/item"
)

func TestDefaultFileTypeInfo(t *testing.T) {
	tests := []struct {
		filename string
		want     FileTypeInfo
	}{
		{"test.js", FileTypeInfo{Filename: "test.yml", Name: "test", Extension: "js", MimeType: "application/x-javascript", TemplateID: item.TemplateFile}},
		{"site.min.css", FileTypeInfo{Filename: "site.min.yml", Name: "site-min", Extension: "css", MimeType: "text/css", TemplateID: item.TemplateFile}},
		{"app.js.map", FileTypeInfo{Filename: "app.js.yml", Name: "app-js", Extension: "map", MimeType: "application/json", TemplateID: item.TemplateFile}},
		{"LIB.JS", FileTypeInfo{Filename: "LIB.yml", Name: "LIB", Extension: "JS", MimeType: "application/x-javascript", TemplateID: item.TemplateFile}},
		{"logo.png", FileTypeInfo{Filename: "logo.yml", Name: "logo", Extension: "png", MimeType: DefaultMimeType, TemplateID: item.TemplateFile}},
		{"README", FileTypeInfo{Filename: "README.yml", Name: "README", Extension: "", MimeType: DefaultMimeType, TemplateID: item.TemplateFile}},
		{".htaccess", FileTypeInfo{Filename: ".htaccess.yml", Name: "-htaccess", Extension: "", MimeType: DefaultMimeType, TemplateID: item.TemplateFile}},
		{"dir/sub/my file.js", FileTypeInfo{Filename: "my file.yml", Name: "my-file", Extension: "js", MimeType: "application/x-javascript", TemplateID: item.TemplateFile}},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultFileTypeInfo(tt.filename))
		})
	}
}

func TestChangeExt(t *testing.T) {
	assert.Equal(t, "a/b.yml", changeExt("a/b.js", ".yml"))
	assert.Equal(t, "b.yml", changeExt("b", ".yml"))
}
