package formatter

import (
	"github.com/goliatone/go-screenfmt/pkg/fields"
)

// CompileFromSubmission builds a Document from a posted column configuration.
// Every column known to the field definitions is extracted; columns the form
// never mentions compile to zero values. The result carries SourceInput and is
// not persisted here.
func CompileFromSubmission(defs fields.Definitions, sub Submission) Document {
	doc := Document{
		Sections: make(map[string]Section, len(defs)),
		Source:   SourceInput,
	}

	for _, section := range defs.Sections() {
		sec := Section{Columns: make(map[string]ColumnConfig)}

		for _, column := range defs.Columns(section) {
			tag, _ := defs.Type(section, column)
			cfg := ColumnConfig{
				Line:         sub.Int(FieldKey(column, AttrLine)),
				ColLength:    sub.Int(FieldKey(column, AttrLength)),
				Column:       sub.Int(FieldKey(column, AttrColumn)),
				Label:        sub.Text(FieldKey(column, AttrLabel)),
				DataJustify:  sub.Text(FieldKey(column, AttrJustifyData)),
				LabelJustify: sub.Text(FieldKey(column, AttrJustifyLabel)),
				Input:        sub.Flag(FieldKey(column, AttrIsInput)),
				Percent:      sub.Flag(FieldKey(column, AttrIsPercent)),
			}

			switch tag {
			case fields.TypeDate:
				cfg.DateFormat = sub.Text(FieldKey(column, AttrDateFormat))
			case fields.TypeNumeric:
				before := sub.Int(FieldKey(column, AttrBeforeDecimal))
				after := sub.Int(FieldKey(column, AttrAfterDecimal))
				cfg.BeforeDecimal = &before
				cfg.AfterDecimal = &after
			}

			sec.Columns[column] = cfg
			if cfg.Line > sec.Rows {
				sec.Rows = cfg.Line
			}
		}

		sec.ColCount = sectionWidth(sec)
		if sec.ColCount > doc.ColCount {
			doc.ColCount = sec.ColCount
		}
		doc.Sections[section] = sec
	}

	return doc
}

// sectionWidth reconciles the two layout authoring styles: fixed-width
// concatenation (sum of col-lengths per row) and absolute positioning (the
// highest column index per row). Each row takes the larger of its two
// measures and the section takes the widest row. Columns on line 0 are
// unplaced and never count.
func sectionWidth(sec Section) int {
	sums := make(map[int]int)
	maxcols := make(map[int]int)
	for _, cfg := range sec.Columns {
		if cfg.Line < 1 {
			continue
		}
		sums[cfg.Line] += cfg.ColLength
		if cfg.Column > maxcols[cfg.Line] {
			maxcols[cfg.Line] = cfg.Column
		}
	}

	width := 0
	for line, sum := range sums {
		if maxcols[line] > sum {
			sum = maxcols[line]
		}
		if sum > width {
			width = sum
		}
	}
	return width
}

// Normalize recomputes the derived counters of a document in place, so
// hand-edited or legacy default files stay consistent with what the compiler
// would have produced.
func Normalize(doc *Document) {
	doc.ColCount = 0
	for name, sec := range doc.Sections {
		sec.Rows = 0
		for _, cfg := range sec.Columns {
			if cfg.Line > sec.Rows {
				sec.Rows = cfg.Line
			}
		}
		sec.ColCount = sectionWidth(sec)
		if sec.ColCount > doc.ColCount {
			doc.ColCount = sec.ColCount
		}
		doc.Sections[name] = sec
	}
}
