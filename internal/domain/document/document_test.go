package document

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_KeepsIntegersAsNumbers(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"evenements":{"events":[{"id":12}]}}`))
	require.NoError(t, err)

	id, ok := doc.Get("evenements.events.0.id")
	require.True(t, ok)
	assert.Equal(t, json.Number("12"), id)
}

func TestDecode_RejectsNonObject(t *testing.T) {
	_, err := Parse([]byte(`[1,2]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestClone_IsDeep(t *testing.T) {
	doc := mustParse(t, `{"formations":{"items":[{"id":"a","tags":["x"]}]}}`)
	snap := doc.Clone()

	require.NoError(t, doc.Set("formations.items.0.id", "changed"))
	require.NoError(t, doc.Push("formations.items.0.tags", "y"))

	id, _ := snap.Get("formations.items.0.id")
	tags, _ := snap.Get("formations.items.0.tags")
	assert.Equal(t, "a", id)
	assert.Equal(t, []any{"x"}, tags)
}

func TestNormalize_TypedValues(t *testing.T) {
	type link struct {
		Text string `json:"text"`
		Path string `json:"path"`
	}

	got, err := Normalize([]link{{Text: "A", Path: "/a"}})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"text": "A", "path": "/a"}}, got)

	got, err = Normalize("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}

func TestMarshalIndent(t *testing.T) {
	doc := Document{"hero": map[string]any{"title": "<Rachef & co>"}}

	out, err := doc.MarshalIndent()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"hero\": {\n    \"title\": \"<Rachef & co>\"\n  }\n}\n", string(out))
}
