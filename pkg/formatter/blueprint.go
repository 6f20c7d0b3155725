package formatter

import (
	"sort"

	"github.com/goliatone/go-screenfmt/pkg/fields"
)

// Cell is the fully resolved formatting descriptor for one field at one grid
// position: the column configuration joined with the field's declared type
// and the column identity used to look the value up in a data row.
type Cell struct {
	ID   string
	Type fields.TypeTag
	ColumnConfig
}

// Row holds the cells of one blueprint line keyed by column position.
type Row struct {
	Columns map[int]Cell
}

// BlueprintSection is one compiled screen subdivision. Row indexes run 1..RowCount.
type BlueprintSection struct {
	RowCount int
	ColCount int
	Rows     map[int]Row
}

// Blueprint is the compiled, render-ready grid derived from a document plus
// field type metadata. It is rebuilt from scratch on any layout change and
// never mutated independently.
type Blueprint struct {
	ColCount int
	Sections map[string]BlueprintSection
}

// Positions returns a row's occupied column positions in ascending order.
func (r Row) Positions() []int {
	if len(r.Columns) == 0 {
		return nil
	}
	positions := make([]int, 0, len(r.Columns))
	for pos := range r.Columns {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// SectionNames returns the blueprint's section names in sorted order.
func (b Blueprint) SectionNames() []string {
	if len(b.Sections) == 0 {
		return nil
	}
	names := make([]string, 0, len(b.Sections))
	for name := range b.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompileBlueprint places every configured column onto its row and column
// position. Compilation is deterministic and idempotent: columns are visited
// in sorted name order, and when two columns in a section claim the same
// position on the same row the later name wins. Columns the field definitions
// do not know are skipped silently, as are sections absent from the document.
func CompileBlueprint(defs fields.Definitions, doc Document) Blueprint {
	bp := Blueprint{
		ColCount: doc.ColCount,
		Sections: make(map[string]BlueprintSection, len(defs)),
	}

	for _, section := range defs.Sections() {
		sec, ok := doc.Sections[section]
		if !ok {
			continue
		}

		compiled := BlueprintSection{
			RowCount: sec.Rows,
			ColCount: 0,
			Rows:     make(map[int]Row, sec.Rows),
		}

		for i := 1; i <= sec.Rows; i++ {
			row := Row{Columns: make(map[int]Cell)}
			for _, column := range sec.ColumnNames() {
				cfg := sec.Columns[column]
				if cfg.Line != i {
					continue
				}
				tag, known := defs.Type(section, column)
				if !known {
					continue
				}
				row.Columns[cfg.Column] = Cell{
					ID:           column,
					Type:         tag,
					ColumnConfig: cfg,
				}
				if cfg.Column > compiled.ColCount {
					compiled.ColCount = cfg.Column
				}
			}
			compiled.Rows[i] = row
		}

		bp.Sections[section] = compiled
	}

	return bp
}
