// Package document implements the untyped JSON documents edited by the dashboard
// and the dot-separated path accessor used by every store mutation.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidPath is returned for empty paths, empty segments and array indexes
	// that cannot address an element.
	ErrInvalidPath = errors.New("document: invalid path")

	// ErrShapeMismatch is returned when an existing value along a path is not the
	// container kind the operation needs (object for fields, array for items).
	ErrShapeMismatch = errors.New("document: container shape mismatch")
)

// Document is one root JSON object (the "data" or "datap" site document).
type Document map[string]any

// New returns an empty document.
func New() Document {
	return Document{}
}

// Decode reads a JSON object from r. Numbers are kept as json.Number so integer
// ids survive a load/save round trip unchanged.
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decode document: top-level value is %T, want object", raw)
	}
	return Document(obj), nil
}

// Parse decodes a JSON object from b.
func Parse(b []byte) (Document, error) {
	return Decode(bytes.NewReader(b))
}

// MarshalIndent renders the document the way exports are written: two-space
// indentation, no HTML escaping.
func (d Document) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(d)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneMap(d))
}

// Clone deep copies a JSON value. Objects and arrays are copied recursively;
// scalars are immutable and returned as is.
func Clone(v any) any {
	switch val := v.(type) {
	case Document:
		return val.Clone()
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Clone(v)
	}
	return out
}

// Normalize converts an arbitrary Go value (typed structs, []map[string]any, ...)
// into the generic object/array form stored in documents.
func Normalize(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool, json.Number, float64:
		return v, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize %T: %w", v, err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("normalize %T: %w", v, err)
	}
	return out, nil
}

// As decodes a generic JSON value into out, which must be a pointer.
func As(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
