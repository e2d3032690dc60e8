package models

import "strings"

// Record is one statement row keyed by header name.
type Record map[string]string

// Statement is the raw content of a statement export before coercion.
type Statement struct {
	Source  string
	Header  []string
	Records []Record
}

// Column returns the header name matching name, ignoring case and
// surrounding or inner whitespace. The second result is false when the
// statement has no such column.
func (s *Statement) Column(name string) (string, bool) {
	want := normalizeHeader(name)
	for _, h := range s.Header {
		if normalizeHeader(h) == want {
			return h, true
		}
	}
	return "", false
}

func normalizeHeader(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "_", "")
	return value
}
