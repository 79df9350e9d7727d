package item

import "path/filepath"

// Reparent attaches it under parent as name and returns it.
//
// Path becomes parent.Path + "/" + name and Parent becomes parent.ID. name is
// used as is; callers sanitize it first.
func Reparent(it *Item, parent Reference, name string) *Item {
	it.Path = parent.Path + "/" + name
	it.Parent = parent.ID
	return it
}

// ParentRecordPath returns the record file of the parent of the record stored
// at recordPath: records of children live in a directory named after the
// parent record.
func ParentRecordPath(recordPath string) string {
	return filepath.Dir(recordPath) + ".yml"
}
