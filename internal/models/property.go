package models

import (
	"encoding/json"
)

// PropertySpec describes one field of the wrapped class exposed through accessors
type PropertySpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	IsFinal     bool   `json:"isFinal,omitempty"`
	NeedsGetter bool   `json:"needsGetter"`
	NeedsSetter bool   `json:"needsSetter"`
}

// NewProperty returns a non-final property that needs both accessors
func NewProperty(name, typ string) PropertySpec {
	return PropertySpec{Name: name, Type: typ, NeedsGetter: true, NeedsSetter: true}
}

// UnmarshalJSON defaults needsGetter and needsSetter to true when absent
func (p *PropertySpec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		IsFinal     bool   `json:"isFinal"`
		NeedsGetter *bool  `json:"needsGetter"`
		NeedsSetter *bool  `json:"needsSetter"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = NewProperty(raw.Name, raw.Type)
	p.IsFinal = raw.IsFinal
	if raw.NeedsGetter != nil {
		p.NeedsGetter = *raw.NeedsGetter
	}
	if raw.NeedsSetter != nil {
		p.NeedsSetter = *raw.NeedsSetter
	}
	return nil
}

// PropertySet is an insertion-ordered mapping from property name to PropertySpec.
// The zero value is an empty set ready to use. Sets behave as values: Put
// never changes a copy taken before it, so targets holding a set can be
// copied freely.
type PropertySet struct {
	items []PropertySpec
	index map[string]int
}

// NewPropertySet builds a set from properties in the given order
func NewPropertySet(props ...PropertySpec) PropertySet {
	var set PropertySet
	for _, p := range props {
		set.Put(p)
	}
	return set
}

// Put inserts p, or replaces the property with the same name keeping its position.
// Storage is copied first since other copies of s may share it.
func (s *PropertySet) Put(p PropertySpec) {
	items := make([]PropertySpec, len(s.items), len(s.items)+1)
	copy(items, s.items)
	index := make(map[string]int, len(s.items)+1)
	for name, i := range s.index {
		index[name] = i
	}

	if i, ok := index[p.Name]; ok {
		items[i] = p
	} else {
		index[p.Name] = len(items)
		items = append(items, p)
	}
	s.items, s.index = items, index
}

// Get returns the property named name
func (s PropertySet) Get(name string) (PropertySpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return PropertySpec{}, false
	}
	return s.items[i], true
}

// Has reports whether a property named name exists
func (s PropertySet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of properties
func (s PropertySet) Len() int {
	return len(s.items)
}

// All returns a copy of the properties in insertion order
func (s PropertySet) All() []PropertySpec {
	out := make([]PropertySpec, len(s.items))
	copy(out, s.items)
	return out
}

// Names returns the property names in insertion order
func (s PropertySet) Names() []string {
	names := make([]string, len(s.items))
	for i, p := range s.items {
		names[i] = p.Name
	}
	return names
}

// MarshalJSON writes the set as an array so order survives the round trip
func (s PropertySet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON reads an array of properties; later duplicates replace earlier ones
func (s *PropertySet) UnmarshalJSON(data []byte) error {
	var props []PropertySpec
	if err := json.Unmarshal(data, &props); err != nil {
		return err
	}
	*s = NewPropertySet(props...)
	return nil
}
