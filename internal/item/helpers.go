package item

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// IDSource returns a new unique identifier each time it is called.
type IDSource func() string

// Clock returns the current time.
type Clock func() time.Time

// NewID returns a random UUID v4 in its canonical form.
func NewID() string {
	return uuid.NewString()
}

// timestampLayout is the item date format, e.g. 20180102T030405Z.
const timestampLayout = "20060102T150405Z"

// FormatTimestamp renders t in UTC as YYYYMMDDTHHMMSSZ.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// SanitizeName replaces each run of non-word characters in name with a dash.
func SanitizeName(name string) string {
	return nonWord.ReplaceAllString(name, "-")
}

// FindField returns the first field whose ID is idOrHint. When no ID matches,
// it returns the first field whose Hint is idOrHint. It returns nil when
// neither matches.
func FindField(fields []*Field, idOrHint string) *Field {
	for _, f := range fields {
		if f.ID == idOrHint {
			return f
		}
	}
	for _, f := range fields {
		if f.Hint == idOrHint {
			return f
		}
	}
	return nil
}

// UpsertField updates the field with the same ID as f, or appends f.
//
// Only the ID is used for matching. An existing field gets its Value
// overwritten; its BlobID is overwritten only when f carries one. The
// returned slice must be used in place of fields.
func UpsertField(fields []*Field, f *Field) []*Field {
	for _, existing := range fields {
		if existing.ID != f.ID {
			continue
		}
		existing.Value = f.Value
		if f.BlobID != "" {
			existing.BlobID = f.BlobID
		}
		return fields
	}
	return append(fields, f)
}

// SequenceIDs returns an IDSource yielding ids in order. It panics once the
// sequence is exhausted, which makes unexpected id allocations visible in tests.
func SequenceIDs(ids ...string) IDSource {
	i := 0
	return func() string {
		if i >= len(ids) {
			panic("item: id sequence exhausted")
		}
		id := ids[i]
		i++
		return id
	}
}

// FixedClock returns a Clock always reporting t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
