package item

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/maruel/unicorn/internal/errors"
)

// documentStart must open every serialized item; the consuming system rejects
// records without it and the YAML encoder does not write it for a single
// document.
const documentStart = "---\n"

// Parse decodes a whole item record.
//
// Any decoding failure, including an empty document, is reported as an
// errors.ErrMalformedRecord error.
func Parse(data []byte) (*Item, error) {
	return parse("", data)
}

func parse(source string, data []byte) (*Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.MalformedRecord(source, fmt.Errorf("empty document"))
	}
	it := &Item{}
	if err := yaml.Unmarshal(data, it); err != nil {
		return nil, errors.MalformedRecord(source, err)
	}
	return it, nil
}

// ParseFrom is like Parse but names source in the returned error.
func ParseFrom(source string, data []byte) (*Item, error) {
	return parse(source, data)
}

// Format encodes it as an item record, starting with the document marker.
func Format(it *Item) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(it); err != nil {
		return nil, fmt.Errorf("failed to encode item %s: %w", it.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode item %s: %w", it.ID, err)
	}
	out := buf.Bytes()
	if bytes.HasPrefix(out, []byte(documentStart)) {
		return out, nil
	}
	return append([]byte(documentStart), out...), nil
}
