package fields

import "sort"

// TypeTag is the primitive type declared for a screen column.
type TypeTag string

const (
	TypeText    TypeTag = "C"
	TypeNumeric TypeTag = "N"
	TypeDate    TypeTag = "D"
)

// Definitions maps section name -> column name -> declared type. A screen's
// definitions are loaded once per code and treated as immutable afterwards.
type Definitions map[string]map[string]TypeTag

// Sections returns the section names in sorted order.
func (d Definitions) Sections() []string {
	if len(d) == 0 {
		return nil
	}
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Columns returns the column names of a section in sorted order.
func (d Definitions) Columns(section string) []string {
	cols := d[section]
	if len(cols) == 0 {
		return nil
	}
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Type looks up the declared type for a column within a section.
func (d Definitions) Type(section, column string) (TypeTag, bool) {
	cols, ok := d[section]
	if !ok {
		return "", false
	}
	tag, ok := cols[column]
	return tag, ok
}
