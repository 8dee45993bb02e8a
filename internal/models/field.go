package models

import (
	"bytes"
	"encoding/json"
)

// Field is a canonical attribute value that is either absent or present.
// A present empty string is not the same as an absent value.
type Field struct {
	value   string
	present bool
}

// Present returns a field holding v.
func Present(v string) Field {
	return Field{value: v, present: true}
}

// Absent returns a field with no value.
func Absent() Field {
	return Field{}
}

// Get returns the value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.value, f.present
}

// IsAbsent reports whether the field has no value.
func (f Field) IsAbsent() bool {
	return !f.present
}

// Value returns the value, or "" when absent.
func (f Field) Value() string {
	return f.value
}

// String returns a readable form; absent fields render as "<absent>".
func (f Field) String() string {
	if !f.present {
		return "<absent>"
	}

	return f.value
}

// MarshalJSON encodes absent fields as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("null"), nil
	}

	return json.Marshal(f.value)
}

// UnmarshalJSON decodes null as absent.
func (f *Field) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Absent()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*f = Present(s)

	return nil
}

// MarshalYAML encodes absent fields as null.
func (f Field) MarshalYAML() (any, error) {
	if !f.present {
		return nil, nil
	}

	return f.value, nil
}
