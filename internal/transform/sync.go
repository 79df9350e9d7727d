package transform

import (
	"encoding/base64"
	"fmt"

	"github.com/maruel/unicorn/internal/item"
)

// SortOrder is the sort order written on every synchronized item.
const SortOrder = 10

// Synchronizer writes the well-known file fields of an item from the asset
// content.
type Synchronizer struct {
	// NewID mints blob identifiers. Defaults to item.NewID.
	NewID item.IDSource
}

// SyncResult reports what Sync changed.
type SyncResult struct {
	// BlobChanged is true when a new blob identifier was minted.
	BlobChanged bool
}

// Sync updates it in place from content and info, then runs populate when
// not nil.
//
// The blob field gets a fresh BlobID only when it is missing or its value
// differs from the base64 encoding of content; identical content leaves the
// blob field untouched. Fields are written in a fixed order (icon, blob, size,
// MIME type, sort order, extension) and populate runs last so its changes win.
func (s *Synchronizer) Sync(it *item.Item, content []byte, info FileTypeInfo, populate PopulateFunc) SyncResult {
	var res SyncResult
	it.Template = info.TemplateID
	if it.SharedFields == nil {
		it.SharedFields = []*item.Field{}
	}

	if info.Icon != "" {
		it.SharedFields = item.UpsertField(it.SharedFields, &item.Field{
			ID:    item.FieldIcon,
			Hint:  item.HintIcon,
			Value: info.Icon,
		})
	}

	blobValue := base64.StdEncoding.EncodeToString(content)
	if blob := item.FindField(it.SharedFields, item.FieldBlob); blob == nil || valueString(blob.Value) != blobValue {
		it.SharedFields = item.UpsertField(it.SharedFields, &item.Field{
			ID:     item.FieldBlob,
			Hint:   item.HintBlob,
			Value:  blobValue,
			BlobID: s.newID(),
		})
		res.BlobChanged = true
	}

	it.SharedFields = item.UpsertField(it.SharedFields, &item.Field{
		ID:    item.FieldSize,
		Hint:  item.HintSize,
		Value: len(content),
	})
	it.SharedFields = item.UpsertField(it.SharedFields, &item.Field{
		ID:    item.FieldMimeType,
		Hint:  item.HintMimeType,
		Value: info.MimeType,
	})
	it.SharedFields = item.UpsertField(it.SharedFields, &item.Field{
		ID:    item.FieldSortOrder,
		Hint:  item.HintSortOrder,
		Value: SortOrder,
	})
	it.SharedFields = item.UpsertField(it.SharedFields, &item.Field{
		ID:    item.FieldExtension,
		Hint:  item.HintExtension,
		Value: info.Extension,
	})

	if populate != nil {
		populate(it)
	}
	return res
}

// valueString returns v as text. Scalars written unquoted by other tools, such
// as an all-digit base64 value, decode as non-strings.
func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func (s *Synchronizer) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return item.NewID()
}
