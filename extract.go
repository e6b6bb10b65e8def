package postgen

// Extract walks a decoded JSON tree (as produced by json.Unmarshal into any)
// along path. String elements index objects, int elements index arrays.
// It reports false if any link is missing, null, out of range or of the wrong shape.
func Extract(tree any, path ...any) (any, bool) {
	cur := tree
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			cur, ok = obj[key]
			if !ok {
				return nil, false
			}
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
		if cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// ExtractString returns the string at path, or def when it is absent or not a string.
func ExtractString(tree any, def string, path ...any) string {
	v, ok := Extract(tree, path...)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}
