package providers

import "strings"

// probe walks a decoded JSON document. String steps index objects and int
// steps index arrays; any mismatch yields ok=false instead of an error.
func probe(doc any, path ...any) (any, bool) {
	cur := doc
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			next, ok := obj[key]
			if !ok {
				return nil, false
			}
			cur = next
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}

func probeString(doc any, path ...any) string {
	v, ok := probe(doc, path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// contentText flattens chat message content, which is either a string or a
// list of typed parts carrying a text field.
func contentText(content any) string {
	switch value := content.(type) {
	case string:
		return value
	case []any:
		parts := make([]string, 0, len(value))
		for _, item := range value {
			if text := probeString(item, "text"); strings.TrimSpace(text) != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}
