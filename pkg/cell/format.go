package cell

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-screenfmt/pkg/fields"
	"github.com/goliatone/go-screenfmt/pkg/formatter"
)

// DateFormat pairs a column date pattern with the label shown in the
// formatter editor's selection list.
type DateFormat struct {
	Pattern string
	Label   string
}

// DateFormats returns the supported date patterns in display order.
func DateFormats() []DateFormat {
	return []DateFormat{
		{Pattern: "m/d/y", Label: "MM/DD/YY"},
		{Pattern: "m/d/Y", Label: "MM/DD/YYYY"},
		{Pattern: "m/d", Label: "MM/DD"},
		{Pattern: "m/Y", Label: "MM/YYYY"},
	}
}

// FormatValue turns a raw field value into its display string according to
// the cell's declared type. It never fails: values that cannot be parsed pass
// through (dates) or coerce to zero (numbers), matching the permissive
// behavior screen data has always had.
func FormatValue(raw any, c formatter.Cell) string {
	switch c.Type {
	case fields.TypeDate:
		return formatDate(stringify(raw), c.DateFormat)
	case fields.TypeNumeric:
		decimals := 0
		if c.AfterDecimal != nil {
			decimals = *c.AfterDecimal
		}
		out := formatNumber(toFloat(raw), decimals)
		if c.Percent {
			out += "%"
		}
		return out
	default:
		return stringify(raw)
	}
}

func stringify(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", raw)
}

func toFloat(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		clean := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprintf("%v", raw)), 64)
		if err != nil {
			return 0
		}
		return f
	}
}

// formatNumber renders a float with a fixed count of digits after the
// decimal point.
func formatNumber(f float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

var dateParseLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
	"20060102",
}

// formatDate reparses a raw date string and renders it with the column's date
// pattern. Empty values pass through untouched, as do values no layout can
// parse.
func formatDate(raw, pattern string) string {
	if len(raw) == 0 {
		return raw
	}

	var parsed time.Time
	var err error
	for _, layout := range dateParseLayouts {
		parsed, err = time.Parse(layout, raw)
		if err == nil {
			break
		}
	}
	if err != nil {
		return raw
	}

	layout := dateLayout(pattern)
	if layout == "" {
		return raw
	}
	return parsed.Format(layout)
}

// dateLayout converts a column date pattern (m, d, y, Y tokens) into a Go
// reference layout.
func dateLayout(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case 'm':
			b.WriteString("01")
		case 'd':
			b.WriteString("02")
		case 'y':
			b.WriteString("06")
		case 'Y':
			b.WriteString("2006")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
