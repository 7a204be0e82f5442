package matcher

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func document(t *testing.T) any {
	t.Helper()

	var doc any
	err := json.Unmarshal([]byte(`{
		"GET": {
			"page": [1, 2, 3],
			"other": [1, "a/b"]
		},
		"PUT": {
			"page": [1]
		}
	}`), &doc)
	assert.NoError(t, err)

	return doc
}

func TestFindInDescendsMappingsAndSequences(t *testing.T) {
	doc := document(t)

	assert.True(t, FindIn("GET/page/1", doc, ""))
	assert.False(t, FindIn("GET/page/4", doc, ""))
	assert.True(t, FindIn("PUT/page", doc, ""))
}

func TestFindInCustomDelimiter(t *testing.T) {
	doc := document(t)

	assert.True(t, FindIn("GET#other#a/b", doc, "#"))
	assert.False(t, FindIn("GET#page/1", doc, "#"))
}

func TestFindInFalsyLeaves(t *testing.T) {
	var doc any
	err := json.Unmarshal([]byte(`{
		"feature": {
			"enabled": true,
			"disabled": false,
			"missing": null,
			"count": 0,
			"name": ""
		}
	}`), &doc)
	assert.NoError(t, err)

	assert.True(t, FindIn("feature", doc, ""))
	assert.True(t, FindIn("feature/enabled", doc, ""))
	assert.False(t, FindIn("feature/disabled", doc, ""))
	assert.False(t, FindIn("feature/missing", doc, ""))
	assert.False(t, FindIn("feature/count", doc, ""))
	assert.False(t, FindIn("feature/name", doc, ""))
}

func TestFindInScalarCursorStopsDescent(t *testing.T) {
	doc := document(t)

	// "1" is a leaf of the page sequence; descending past it fails
	assert.False(t, FindIn("GET/page/1/deeper", doc, ""))
	assert.False(t, FindIn("GET/page/1/deeper/more", doc, ""))
}

func TestFindInNilDocument(t *testing.T) {
	assert.False(t, FindIn("anything", nil, ""))
}
