package schema

import (
	"fmt"
	"strings"
)

// Field is a single requested document slot within a section.
// Key is derived from Label and never changes afterwards.
type Field struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Section is a named group of requested documents.
type Section struct {
	Key    string  `json:"key"`
	Fields []Field `json:"fields"`
}

// Schema holds the ordered section list plus a key index for lookups.
// Ordering follows the source table; identity is the section key.
type Schema struct {
	sections []Section
	index    map[string]int
}

// FieldKey normalizes a field label into its stable key:
// lower-cased with every non-alphanumeric character removed.
func FieldKey(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// New builds a Schema from ordered sections, deriving field keys from labels.
// Two labels in one section that normalize to the same key are rejected
// outright: zip paths and URL flags depend on keys being stable per label.
func New(sections []Section) (*Schema, error) {
	s := &Schema{
		index: make(map[string]int, len(sections)),
	}

	for _, src := range sections {
		key := strings.TrimSpace(src.Key)
		if key == "" {
			return nil, fmt.Errorf("%w: section with %d field(s)", ErrEmptySectionKey, len(src.Fields))
		}
		if _, dup := s.index[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, key)
		}

		sec := Section{Key: key, Fields: make([]Field, 0, len(src.Fields))}
		seen := make(map[string]string, len(src.Fields))
		for _, f := range src.Fields {
			fk := f.Key
			if fk == "" {
				fk = FieldKey(f.Label)
			}
			if fk == "" {
				// Label normalized to nothing; the row cannot be addressed.
				return nil, fmt.Errorf("%w: section %q, label %q", ErrEmptyFieldKey, key, f.Label)
			}
			if prev, dup := seen[fk]; dup {
				return nil, fmt.Errorf("%w: section %q, labels %q and %q both normalize to %q",
					ErrDuplicateFieldKey, key, prev, f.Label, fk)
			}
			seen[fk] = f.Label
			sec.Fields = append(sec.Fields, Field{Key: fk, Label: f.Label, Description: f.Description})
		}

		s.index[key] = len(s.sections)
		s.sections = append(s.sections, sec)
	}

	return s, nil
}

// Sections returns the sections in source order.
func (s *Schema) Sections() []Section {
	return s.sections
}

// Keys returns the section keys in source order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.sections))
	for i, sec := range s.sections {
		keys[i] = sec.Key
	}
	return keys
}

// Fields returns the ordered field list for a section key.
func (s *Schema) Fields(sectionKey string) ([]Field, bool) {
	i, ok := s.index[sectionKey]
	if !ok {
		return nil, false
	}
	return s.sections[i].Fields, true
}

// HasSection reports whether the section key exists in the schema.
func (s *Schema) HasSection(sectionKey string) bool {
	_, ok := s.index[sectionKey]
	return ok
}

// HasField reports whether the field key exists within the section.
func (s *Schema) HasField(sectionKey, fieldKey string) bool {
	fields, ok := s.Fields(sectionKey)
	if !ok {
		return false
	}
	for _, f := range fields {
		if f.Key == fieldKey {
			return true
		}
	}
	return false
}

// Len returns the number of sections.
func (s *Schema) Len() int {
	return len(s.sections)
}
