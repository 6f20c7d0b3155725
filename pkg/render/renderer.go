package render

import (
	"context"

	"github.com/goliatone/go-screenfmt/pkg/cell"
	"github.com/goliatone/go-screenfmt/pkg/formatter"
)

// NoticeKind classifies the degraded outcomes of screen assembly.
type NoticeKind string

const (
	// NoticeUnavailable means the data payload file does not exist.
	NoticeUnavailable NoticeKind = "unavailable"
	// NoticeInvalid means the payload exists but was empty or unparseable.
	NoticeInvalid NoticeKind = "invalid"
)

// Notice is a user-visible, non-fatal condition rendered in place of the
// screen body.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// CellView pairs a resolved cell descriptor with the render instruction
// produced for one data row.
type CellView struct {
	Cell     formatter.Cell
	Rendered cell.Rendered
}

// RowView is one laid-out line of cells, ordered by column position.
type RowView struct {
	Cells []CellView
}

// SectionView is one screen subdivision with its record rows expanded
// against the blueprint grid.
type SectionView struct {
	Name     string
	RowCount int
	ColCount int
	Rows     []RowView
}

// View is the fully resolved screen handed to renderers: layout, formatted
// values, and decorations, but no markup.
type View struct {
	Code     string
	Title    string
	ColCount int
	Sections []SectionView
	Scripts  []string
}

// Renderer converts a screen view (or a degraded notice) into output bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View) ([]byte, error)
	RenderNotice(ctx context.Context, notice Notice) ([]byte, error)
}
