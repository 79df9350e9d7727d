package item

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/maruel/unicorn/internal/errors"
)

const child1 = `---
ID: "0f1fcbd5-5f3a-4c9b-9a8e-2f0f3b5cf0a1"
Parent: "P"
Template: "962b53c4-f93b-4df9-9821-415c867b8903"
Path: /content/Parent1/child1
DB: master
SharedFields:
- ID: "40e50ed9-ba07-4702-992e-a912738d32dc"
  Hint: Blob
  BlobID: ORIGINAL_BLOB_ID
  Value: ZnVuY3Rpb24gZm9vKGJhcikgeyByZXR1cm4gYmFyOyB9
- ID: "6954b7c7-2487-423f-8600-436cb3b6dc0e"
  Hint: Size
  Value: 33
Languages:
- Language: en
  Versions:
  - Version: 1
    Fields:
    - ID: "25bed78c-4957-4165-998a-ca1b52f67497"
      Hint: __Created
      Value: 20180102T030405Z
`

func TestParse(t *testing.T) {
	it, err := Parse([]byte(child1))
	require.NoError(t, err)

	assert.Equal(t, "0f1fcbd5-5f3a-4c9b-9a8e-2f0f3b5cf0a1", it.ID)
	assert.Equal(t, "P", it.Parent)
	assert.Equal(t, TemplateFile, it.Template)
	assert.Equal(t, "/content/Parent1/child1", it.Path)
	assert.Equal(t, "master", it.DB)
	require.Len(t, it.SharedFields, 2)

	blob := it.SharedField(FieldBlob)
	require.NotNil(t, blob)
	assert.Equal(t, "ORIGINAL_BLOB_ID", blob.BlobID)
	assert.Equal(t, "ZnVuY3Rpb24gZm9vKGJhcikgeyByZXR1cm4gYmFyOyB9", blob.Value)
	assert.Equal(t, 33, it.SharedField(HintSize).Value)

	require.Len(t, it.Languages, 1)
	require.Len(t, it.Languages[0].Versions, 1)
	assert.Equal(t, 1, it.Languages[0].Versions[0].Version)
	assert.Equal(t, "20180102T030405Z", it.Languages[0].Versions[0].Fields[0].Value)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"blank", "  \n\n"},
		{"scalar", "just a string"},
		{"broken", "ID: [unterminated\n"},
		{"wrong shape", "SharedFields: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrMalformedRecord), "got %v", err)
		})
	}

	_, err := ParseFrom("dir/x.yml", []byte("ID: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dir/x.yml")
}

func TestFormat(t *testing.T) {
	it := &Item{
		ID:       "aaa",
		Parent:   "P",
		Template: TemplateFile,
		Path:     "/content/Parent1/test",
		DB:       "master",
		SharedFields: []*Field{
			{ID: FieldSortOrder, Hint: HintSortOrder, Value: 10},
			{ID: "111222", Hint: "Custom", Value: "Value"},
		},
		Languages: []*Language{{Language: "en", Versions: []*Version{{Version: 1, Fields: []*Field{
			{ID: FieldCreatedBy, Hint: HintCreatedBy, Value: `sitecore\admin`},
		}}}}},
	}
	out, err := Format(it)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "---\n"), s)
	assert.Equal(t, 1, strings.Count(s, "---"), s)

	// Keys are written in record order.
	last := -1
	for _, key := range []string{"\nID:", "\nParent:", "\nTemplate:", "\nPath:", "\nDB:", "\nSharedFields:", "\nLanguages:"} {
		i := strings.Index(s, key)
		require.GreaterOrEqual(t, i, 0, "missing %q in\n%s", key, s)
		assert.Greater(t, i, last, "%q out of order", key)
		last = i
	}
	assert.NotContains(t, s, "BlobID", "empty BlobID must be omitted")

	back, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 10, back.SharedField(FieldSortOrder).Value)
	// Numeric looking IDs stay strings.
	assert.Equal(t, "111222", back.SharedField("Custom").ID)
	assert.Equal(t, `sitecore\admin`, back.Languages[0].Versions[0].Fields[0].Value)
}

func TestFormatEncoderDoesNotWriteMarker(t *testing.T) {
	// Format relies on adding the document marker itself.
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	require.NoError(t, enc.Encode(&Item{ID: "x"}))
	require.NoError(t, enc.Close())
	assert.False(t, strings.HasPrefix(buf.String(), "---"))
}

func TestFormatLongValuesStayOnOneLine(t *testing.T) {
	long := strings.Repeat("QUJD", 200)
	out, err := Format(&Item{ID: "x", SharedFields: []*Field{{ID: FieldBlob, Value: long}}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Value: "+long+"\n")
}

func TestRoundTripIsStable(t *testing.T) {
	it, err := Parse([]byte(child1))
	require.NoError(t, err)
	first, err := Format(it)
	require.NoError(t, err)

	again, err := Parse(first)
	require.NoError(t, err)
	second, err := Format(again)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRoundTripKeepsUnknownKeys(t *testing.T) {
	in := child1 + "BranchID: \"00000000-0000-0000-0000-000000000000\"\n"
	it, err := Parse([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", it.Extra["BranchID"])

	out, err := Format(it)
	require.NoError(t, err)
	assert.Contains(t, string(out), "BranchID:")
}
