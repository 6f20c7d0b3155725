package htmltable

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-screenfmt/pkg/cell"
	"github.com/goliatone/go-screenfmt/pkg/render"
)

// Labels are user-authored in the formatter editor; strip any markup before
// escaping.
var labelPolicy = bluemonday.StrictPolicy()

func justifyClass(justify string) string {
	switch justify {
	case "right":
		return "text-right"
	case "center":
		return "text-center"
	default:
		return "text-left"
	}
}

func rowMarkup(row render.RowView) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, cv := range row.Cells {
		b.WriteString(cellMarkup(cv))
	}
	b.WriteString("</tr>")
	return b.String()
}

func cellMarkup(cv render.CellView) string {
	var b strings.Builder
	b.Grow(128)

	b.WriteString(`<td class="cell `)
	b.WriteString(justifyClass(cv.Cell.DataJustify))
	b.WriteString(`" data-column="`)
	b.WriteString(html.EscapeString(cv.Cell.ID))
	b.WriteString(`">`)

	if label := strings.TrimSpace(labelPolicy.Sanitize(cv.Cell.Label)); label != "" {
		b.WriteString(`<span class="cell-label `)
		b.WriteString(justifyClass(cv.Cell.LabelJustify))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(label))
		b.WriteString(`</span> `)
	}

	b.WriteString(valueMarkup(cv.Rendered))
	b.WriteString("</td>")
	return b.String()
}

func valueMarkup(r cell.Rendered) string {
	value := html.EscapeString(r.Value)
	switch r.Kind {
	case cell.KindLink:
		return `<a href="` + html.EscapeString(r.Href) + `" target="_blank">` + value + `</a>`
	case cell.KindTel:
		return `<a href="` + html.EscapeString(r.Href) + `">` + value + `</a>`
	case cell.KindTooltip:
		return `<span class="has-hover" data-toggle="tooltip" title="` + html.EscapeString(r.Tooltip) + `">` + value + `</span>`
	case cell.KindInput:
		return `<input class="form-control input-sm underlined" value="` + value + `">`
	default:
		return value
	}
}
