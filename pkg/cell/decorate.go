package cell

import (
	"strings"

	"github.com/goliatone/go-screenfmt/pkg/formatter"
)

// Kind classifies the semantic wrapping a renderer should apply to a
// formatted value. The decorator never emits markup itself.
type Kind string

const (
	KindPlain   Kind = "plain"
	KindLink    Kind = "link"
	KindTel     Kind = "tel"
	KindTooltip Kind = "tooltip"
	KindInput   Kind = "input"
)

// Rendered is the render instruction for one cell: the display value plus
// the semantic decoration resolved for it.
type Rendered struct {
	Kind    Kind
	Value   string
	Href    string
	Tooltip string
}

// QuantityDescriber produces tooltip copy for quantity columns, given the
// item the row belongs to and the formatted quantity. It is an optional
// external capability; without one, quantity cells render plain.
type QuantityDescriber func(itemID, quantity string) string

// Column identities with special handling, and the row/session keys quantity
// tooltips resolve their item from.
var (
	defaultTrackingColumns = []string{"Tracking Number"}
	defaultPhoneColumns    = []string{"phone", "fax"}
)

const (
	serviceTypeColumn = "Service Type"
	itemIDColumn      = "Item ID"
)

// Option customises a Decorator.
type Option func(*Decorator)

// WithTrackingColumns replaces the column identities treated as tracking
// numbers.
func WithTrackingColumns(columns ...string) Option {
	return func(d *Decorator) {
		if len(columns) > 0 {
			d.trackingColumns = columns
		}
	}
}

// WithPhoneColumns replaces the column identities treated as phone or fax
// numbers.
func WithPhoneColumns(columns ...string) Option {
	return func(d *Decorator) {
		if len(columns) > 0 {
			d.phoneColumns = columns
		}
	}
}

// WithQuantityDescriber enables quantity tooltips.
func WithQuantityDescriber(describe QuantityDescriber) Option {
	return func(d *Decorator) {
		d.describe = describe
	}
}

// WithSessionItemID sets the ambient item identifier used when a row carries
// no "Item ID" value of its own.
func WithSessionItemID(itemID string) Option {
	return func(d *Decorator) {
		d.sessionItemID = itemID
	}
}

// Decorator resolves the semantic wrapping for formatted cell values.
type Decorator struct {
	trackingColumns []string
	phoneColumns    []string
	describe        QuantityDescriber
	sessionItemID   string
}

// NewDecorator builds a Decorator with the stock alias sets applied.
func NewDecorator(options ...Option) *Decorator {
	d := &Decorator{
		trackingColumns: defaultTrackingColumns,
		phoneColumns:    defaultPhoneColumns,
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decorate applies semantic wrapping to a formatted value. Rules apply in
// strict priority order and the first match wins: tracking link, tel link,
// quantity tooltip, input control, plain value.
func (d *Decorator) Decorate(formatted string, row map[string]any, c formatter.Cell) Rendered {
	switch {
	case contains(d.trackingColumns, c.ID):
		href := TrackingURL(stringify(row[serviceTypeColumn]), stringify(row[c.ID]))
		if href == "" {
			return Rendered{Kind: KindPlain, Value: formatted}
		}
		return Rendered{Kind: KindLink, Value: formatted, Href: href}

	case contains(d.phoneColumns, c.ID):
		return Rendered{Kind: KindTel, Value: formatted, Href: "tel:" + PhoneHref(stringify(row[c.ID]))}

	case strings.Contains(strings.ToLower(c.ID), "quantity") && d.describe != nil:
		itemID := d.sessionItemID
		if v, ok := row[itemIDColumn]; ok {
			itemID = stringify(v)
		}
		return Rendered{Kind: KindTooltip, Value: formatted, Tooltip: d.describe(itemID, formatted)}

	case c.Input:
		return Rendered{Kind: KindInput, Value: formatted}

	default:
		return Rendered{Kind: KindPlain, Value: formatted}
	}
}

// Render formats and decorates a raw row value in one step.
func (d *Decorator) Render(row map[string]any, c formatter.Cell) Rendered {
	return d.Decorate(FormatValue(row[c.ID], c), row, c)
}

func contains(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
