// Package texttable renders a screen as a plain-text grid, used for
// terminal previews and debug output.
package texttable

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/goliatone/go-screenfmt/pkg/render"
)

type Renderer struct{}

// New constructs the plain-text renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "texttable"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, view render.View) ([]byte, error) {
	var b strings.Builder

	if view.Title != "" {
		b.WriteString(view.Title)
		b.WriteByte('\n')
	}

	for _, section := range view.Sections {
		fmt.Fprintf(&b, "== %s ==\n", section.Name)
		writeSection(&b, section)
	}

	return []byte(b.String()), nil
}

func (r *Renderer) RenderNotice(_ context.Context, notice render.Notice) ([]byte, error) {
	return []byte(fmt.Sprintf("*** %s ***\n", notice.Message)), nil
}

func writeSection(b *strings.Builder, section render.SectionView) {
	cells := make([][]string, len(section.Rows))
	justify := make([][]string, len(section.Rows))
	var widths []int

	for i, row := range section.Rows {
		for j, cv := range row.Cells {
			text := cv.Rendered.Value
			if label := strings.TrimSpace(cv.Cell.Label); label != "" {
				text = label + " " + text
			}
			cells[i] = append(cells[i], text)
			justify[i] = append(justify[i], cv.Cell.DataJustify)
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(text); w > widths[j] {
				widths[j] = w
			}
		}
	}

	if len(widths) == 0 {
		return
	}

	border := borderLine(widths)
	b.WriteString(border)
	for i, row := range cells {
		b.WriteByte('|')
		for j, text := range row {
			b.WriteByte(' ')
			b.WriteString(pad(text, widths[j], justify[i][j]))
			b.WriteString(" |")
		}
		b.WriteByte('\n')
	}
	b.WriteString(border)
}

func borderLine(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

func pad(text string, width int, justify string) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	switch justify {
	case "right":
		return strings.Repeat(" ", gap) + text
	case "center":
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	default:
		return text + strings.Repeat(" ", gap)
	}
}
