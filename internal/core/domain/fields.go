package domain

import "encoding/json"

// Fields is an ordered multi-valued mapping of field names to values.
// Names keep the position of their first Add; values keep insertion order.
// The zero value is ready to use.
type Fields struct {
	names  []string
	values map[string][]string
}

// NewFields creates an empty field set.
func NewFields() *Fields {
	return &Fields{}
}

// Add appends a value to the named field, creating the field if needed.
func (f *Fields) Add(name, value string) {
	if f.values == nil {
		f.values = make(map[string][]string)
	}
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = append(f.values[name], value)
}

// Get returns the values of the named field, or nil if absent.
func (f *Fields) Get(name string) []string {
	if f == nil || f.values == nil {
		return nil
	}
	return f.values[name]
}

// First returns the first value of the named field, or empty string.
func (f *Fields) First(name string) string {
	vals := f.Get(name)
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Has returns true if the named field has at least one value.
func (f *Fields) Has(name string) bool {
	return len(f.Get(name)) > 0
}

// Names returns the field names in insertion order.
func (f *Fields) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Len returns the number of distinct field names.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Remove deletes the named field and all its values.
func (f *Fields) Remove(name string) {
	if f == nil || f.values == nil {
		return
	}
	if _, ok := f.values[name]; !ok {
		return
	}
	delete(f.values, name)
	for i, n := range f.names {
		if n == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of the field set.
func (f *Fields) Clone() *Fields {
	out := NewFields()
	if f == nil {
		return out
	}
	for _, name := range f.names {
		for _, v := range f.values[name] {
			out.Add(name, v)
		}
	}
	return out
}

// Field is a single named field with its values, used for serialisation.
type Field struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// List returns the fields as an ordered slice.
func (f *Fields) List() []Field {
	if f == nil {
		return nil
	}
	list := make([]Field, 0, len(f.names))
	for _, name := range f.names {
		vals := make([]string, len(f.values[name]))
		copy(vals, f.values[name])
		list = append(list, Field{Name: name, Values: vals})
	}
	return list
}

// MarshalJSON encodes the fields as an ordered list of {name, values}.
func (f *Fields) MarshalJSON() ([]byte, error) {
	list := f.List()
	if list == nil {
		list = []Field{}
	}
	return json.Marshal(list)
}

// UnmarshalJSON decodes an ordered list of {name, values}.
func (f *Fields) UnmarshalJSON(data []byte) error {
	var list []Field
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	f.names = nil
	f.values = nil
	for _, field := range list {
		for _, v := range field.Values {
			f.Add(field.Name, v)
		}
	}
	return nil
}
