package entities

import "sort"

// RawEntity is the provider-specific record shape: a flat mapping of
// field name to scalar value. No further structure is assumed; the
// highlight extractor and mappers scan it generically.
type RawEntity map[string]interface{}

// StringField returns the named field as a string, or "" when absent
// or not string-valued
func (e RawEntity) StringField(name string) string {
	if v, ok := e[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// StringFieldNames returns the names of all string-valued fields in
// sorted order, so that generic scans over the entity are deterministic
func (e RawEntity) StringFieldNames() []string {
	names := make([]string, 0, len(e))
	for name, v := range e {
		if _, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
