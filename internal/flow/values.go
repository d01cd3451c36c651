package flow

import "strings"

// Values maps field ids to their current text.
type Values map[string]string

// Get returns the value for id, or "" when it was never written.
func (v Values) Get(id string) string {
	return v[id]
}

// Clone returns a copy that shares nothing with v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// IsReady reports whether every required field has a non-blank value.
// Whitespace-only text counts as empty.
func IsReady(values Values, required []string) bool {
	for _, id := range required {
		if strings.TrimSpace(values[id]) == "" {
			return false
		}
	}
	return true
}
