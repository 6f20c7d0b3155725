package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Source records where a document came from. It is informational only and is
// never consulted during compilation.
type Source string

const (
	SourceInput    Source = "input"
	SourceDatabase Source = "database"
	SourceDefault  Source = "default"
)

// ColumnConfig is one user-configurable column placement. BeforeDecimal and
// AfterDecimal are pointers so a stored zero stays distinguishable from
// "not applicable"; they are populated only for numeric columns, DateFormat
// only for date columns.
type ColumnConfig struct {
	Line          int    `json:"line"`
	Column        int    `json:"column"`
	ColLength     int    `json:"col-length"`
	Label         string `json:"label"`
	BeforeDecimal *int   `json:"before-decimal,omitempty"`
	AfterDecimal  *int   `json:"after-decimal,omitempty"`
	DateFormat    string `json:"date-format,omitempty"`
	Percent       bool   `json:"percent"`
	Input         bool   `json:"input"`
	DataJustify   string `json:"data-justify"`
	LabelJustify  string `json:"label-justify"`
}

// Section groups the configured columns of one named screen subdivision.
type Section struct {
	Rows     int                     `json:"rows"`
	ColCount int                     `json:"colcount"`
	Columns  map[string]ColumnConfig `json:"columns"`
}

// Document is the raw formatter shape that gets persisted and posted.
type Document struct {
	ColCount int                `json:"colcount"`
	Sections map[string]Section `json:"sections"`
	Source   Source             `json:"-"`
}

// SectionNames returns the document's section names in sorted order.
func (d Document) SectionNames() []string {
	if len(d.Sections) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Sections))
	for name := range d.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColumnNames returns a section's column names in sorted order.
func (s Section) ColumnNames() []string {
	if len(s.Columns) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Columns))
	for name := range s.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultColumn returns the shipped per-column defaults used when an editor
// adds a field that has never been placed.
func DefaultColumn() ColumnConfig {
	return ColumnConfig{
		Line:         0,
		Column:       0,
		ColLength:    0,
		Label:        "Label",
		DataJustify:  "left",
		LabelJustify: "right",
	}
}

// Decode parses a persisted document. The source tag is left for the caller
// to assign since only it knows where the bytes came from.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("formatter: decode document: %w", err)
	}
	if doc.Sections == nil {
		doc.Sections = make(map[string]Section)
	}
	return doc, nil
}

// Encode serialises a document for persistence.
func Encode(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("formatter: encode document: %w", err)
	}
	return data, nil
}
