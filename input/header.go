package input

import "strings"

// Header is an ordered multimap of request header fields.
// Names are matched case-insensitively; insertion order is preserved.
type Header struct {
	fields []Field
}

// Add appends a header field. Existing fields with the same name are kept.
func (h *Header) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Set replaces every field named name with a single field holding value.
// The new field takes the position of the first replaced one, or goes last
// when there was none.
func (h *Header) Set(name, value string) {
	replaced := false
	fields := h.fields[:0:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.Name, name) {
			fields = append(fields, f)
			continue
		}
		if !replaced {
			fields = append(fields, Field{Name: name, Value: value})
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, Field{Name: name, Value: value})
	}
	h.fields = fields
}

// Values returns the values of all fields named name, in order.
func (h *Header) Values(name string) []string {
	var values []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

func (h *Header) Has(name string) bool {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

// Fields returns a copy of all fields in insertion order.
func (h *Header) Fields() []Field {
	fields := make([]Field, len(h.fields))
	copy(fields, h.fields)
	return fields
}

func (h *Header) Len() int {
	return len(h.fields)
}
