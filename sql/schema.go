package sql

import "strings"

// Column describes one named, typed slot produced by a plan node or
// carried by a morsel. It mirrors the teacher's sql.Column but drops
// the row-engine-only fields (Source, PrimaryKey) that have no
// equivalent in a columnar core.
type Column struct {
	Name     string
	Type     Type
	Nullable bool
}

// Schema is an ordered list of columns. Column order is significant:
// it is the order vectors appear within a Morsel and the order
// GetField indices address.
type Schema []*Column

// IndexOf returns the position of the named column, or -1 if absent.
// Matching is case-insensitive, following SQL identifier folding.
func (s Schema) IndexOf(name string) int {
	for i, c := range s {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Concat appends other's columns after s's, used when building a
// join's output schema (§4.5).
func (s Schema) Concat(other Schema) Schema {
	out := make(Schema, 0, len(s)+len(other))
	out = append(out, s...)
	out = append(out, other...)
	return out
}

// Equal compares two schemas by name, type and nullability in order.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].Name != other[i].Name || s[i].Type != other[i].Type || s[i].Nullable != other[i].Nullable {
			return false
		}
	}
	return true
}
