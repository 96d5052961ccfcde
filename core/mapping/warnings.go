package mapping

import "fmt"

// Deprecation is a single deprecation notice recorded while parsing. Field is
// the definition the notice was recorded against; Message follows a stable
// template that migration tooling may assert on.
type Deprecation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Deprecations accumulates the notices of one parse call. Instances are owned
// by a single call and must not be shared across concurrent parses; the
// caller reads the result once parsing finishes.
type Deprecations struct {
	entries []Deprecation
}

// Add records a notice against a field.
func (d *Deprecations) Add(field, format string, args ...any) {
	d.entries = append(d.entries, Deprecation{Field: field, Message: fmt.Sprintf(format, args...)})
}

// All returns the recorded notices in the order they were recorded.
func (d *Deprecations) All() []Deprecation {
	return d.entries
}

// Messages returns only the message strings, in order.
func (d *Deprecations) Messages() []string {
	messages := make([]string, len(d.entries))
	for i, entry := range d.entries {
		messages[i] = entry.Message
	}
	return messages
}

// Len returns how many notices were recorded.
func (d *Deprecations) Len() int {
	return len(d.entries)
}
