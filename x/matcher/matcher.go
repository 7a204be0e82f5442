// Package matcher performs segmented lookup of a query string inside an
// arbitrary nested permissions document.
package matcher

import (
	"strconv"
	"strings"

	"github.com/totegamma/routegate/core"
)

const DefaultDelimiter = "/"

// FindIn splits query on delimiter and descends the document token by
// token: mapping keys are followed, sequence elements are matched by
// value. The result is true iff the final cursor is present and truthy.
func FindIn(query string, document core.Document, delimiter string) bool {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	tokens := strings.Split(query, delimiter)
	cursor := document

	for _, token := range tokens {
		next, ok := advance(cursor, token)
		if !ok {
			return false
		}
		cursor = next
	}

	return core.Truthy(cursor)
}

func advance(cursor core.Document, token string) (core.Document, bool) {
	switch v := cursor.(type) {
	case map[string]any:
		next, ok := v[token]
		return next, ok
	case []any:
		for _, element := range v {
			if scalarMatch(element, token) {
				return element, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}

// scalarMatch compares a sequence element against a query token. Tokens
// are always strings, so numeric and boolean elements are compared by
// their canonical string form.
func scalarMatch(element any, token string) bool {
	switch e := element.(type) {
	case string:
		return e == token
	case float64:
		return strconv.FormatFloat(e, 'f', -1, 64) == token
	case int:
		return strconv.Itoa(e) == token
	case bool:
		return strconv.FormatBool(e) == token
	default:
		return false
	}
}
