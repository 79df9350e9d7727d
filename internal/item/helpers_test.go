package item

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindField(t *testing.T) {
	fields := []*Field{
		{ID: "1", Hint: "Target", Value: "by hint"},
		{ID: "Target", Hint: "Other", Value: "by id"},
		{ID: "2", Hint: "Size", Value: 3},
	}

	tests := []struct {
		name    string
		key     string
		want    any
		wantNil bool
	}{
		{"id wins over earlier hint", "Target", "by id", false},
		{"hint when no id", "Size", 3, false},
		{"id", "1", "by hint", false},
		{"missing", "nope", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindField(fields, tt.key)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Value)
		})
	}

	assert.Nil(t, FindField(nil, "x"))
}

func TestUpsertField(t *testing.T) {
	t.Run("appends new fields in order", func(t *testing.T) {
		var fields []*Field
		fields = UpsertField(fields, &Field{ID: "a", Value: 1})
		fields = UpsertField(fields, &Field{ID: "b", Value: 2})
		require.Len(t, fields, 2)
		assert.Equal(t, "a", fields[0].ID)
		assert.Equal(t, "b", fields[1].ID)
	})

	t.Run("same id keeps one entry with last value", func(t *testing.T) {
		var fields []*Field
		for i := range 5 {
			fields = UpsertField(fields, &Field{ID: "a", Hint: "A", Value: i})
		}
		require.Len(t, fields, 1)
		assert.Equal(t, 4, fields[0].Value)
	})

	t.Run("updates in place", func(t *testing.T) {
		existing := &Field{ID: "a", Hint: "A", Value: "old"}
		fields := []*Field{existing}
		fields = UpsertField(fields, &Field{ID: "a", Hint: "ignored", Value: "new"})
		require.Len(t, fields, 1)
		assert.Same(t, existing, fields[0])
		assert.Equal(t, "new", existing.Value)
		assert.Equal(t, "A", existing.Hint)
	})

	t.Run("matches by id only", func(t *testing.T) {
		fields := []*Field{{ID: "a", Hint: "Blob", Value: "x"}}
		fields = UpsertField(fields, &Field{ID: "Blob", Value: "y"})
		require.Len(t, fields, 2)
		assert.Equal(t, "x", fields[0].Value)
	})

	t.Run("empty blob id never clears", func(t *testing.T) {
		fields := []*Field{{ID: "a", Value: "x", BlobID: "keep"}}
		fields = UpsertField(fields, &Field{ID: "a", Value: "y"})
		assert.Equal(t, "keep", fields[0].BlobID)
		assert.Equal(t, "y", fields[0].Value)

		fields = UpsertField(fields, &Field{ID: "a", Value: "z", BlobID: "new"})
		assert.Equal(t, "new", fields[0].BlobID)
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test", "test"},
		{"jquery.min", "jquery-min"},
		{"my file (1)", "my-file-1-"},
		{"a..b", "a-b"},
		{"snake_case", "snake_case"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "20180102T030405Z", FormatTimestamp(time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC)))

	// Converted to UTC.
	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "20191231T230000Z", FormatTimestamp(time.Date(2020, 1, 1, 1, 0, 0, 0, loc)))
}

func TestNewID(t *testing.T) {
	canonical := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	seen := make(map[string]bool)
	for range 100 {
		id := NewID()
		assert.Regexp(t, canonical, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequenceIDs(t *testing.T) {
	next := SequenceIDs("aaa", "bbb")
	assert.Equal(t, "aaa", next())
	assert.Equal(t, "bbb", next())
	assert.Panics(t, func() { next() })
}
