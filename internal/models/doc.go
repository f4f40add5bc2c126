// Package models defines the record types stored in the document database
// and their mapping to and from raw documents. Documents are schemaless, so
// every FromDoc constructor tolerates missing or oddly typed fields and
// applies the documented defaults.
package models

// asString reads a document field as a string, returning "" for anything else.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// stringOr reads a document field as a string with a default for empty or
// non-string values.
func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// asFloat reads a numeric document field. Firestore hands back int64 for
// integral values and float64 otherwise; JSON decoding always yields float64.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// asStringSlice reads a document field as a list of strings. The second
// return is false when the field is absent or holds anything that is not a
// pure string list.
func asStringSlice(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
