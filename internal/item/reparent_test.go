package item

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReparent(t *testing.T) {
	it := (&Factory{NewID: SequenceIDs("aaa")}).Create(TemplateFile, CreateOptions{})
	parent := Reference{ID: "P", Path: "/content/Parent1"}

	got := Reparent(it, parent, "test")
	assert.Same(t, it, got)
	assert.Equal(t, "/content/Parent1/test", it.Path)
	assert.Equal(t, "P", it.Parent)
	assert.Equal(t, "aaa", it.ID)

	// Idempotent.
	Reparent(it, parent, "test")
	assert.Equal(t, "/content/Parent1/test", it.Path)
	assert.Equal(t, "P", it.Parent)

	// Moving replaces both links.
	Reparent(it, Reference{ID: "Q", Path: "/content/Other"}, "renamed")
	assert.Equal(t, "/content/Other/renamed", it.Path)
	assert.Equal(t, "Q", it.Parent)
	assert.Equal(t, Reference{ID: "aaa", Path: "/content/Other/renamed"}, it.Reference())
}

func TestParentRecordPath(t *testing.T) {
	p := filepath.Join("serialization", "Parent1", "child1.yml")
	assert.Equal(t, filepath.Join("serialization", "Parent1")+".yml", ParentRecordPath(p))
}
