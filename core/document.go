package core

// Document is a free-form permissions document: a mapping of string keys
// to further mappings/sequences/scalars, or a sequence of route paths.
// JSON-decoded values (map[string]any, []any, string, float64, bool, nil)
// are the canonical representation; traversal is done by type switch.
type Document = any

// EmptyMapping returns the document used in place of an unresolved one.
func EmptyMapping() Document {
	return map[string]any{}
}

// IsSourceIdentifier reports whether a permissions value names a remote
// source instead of carrying a static document.
func IsSourceIdentifier(doc Document) (string, bool) {
	s, ok := doc.(string)
	return s, ok
}

// Truthy reports whether a document value counts as a positive result.
// Mappings and sequences are always truthy, mirroring how the documents
// behave in the environments that produce them.
func Truthy(doc Document) bool {
	switch v := doc.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}
