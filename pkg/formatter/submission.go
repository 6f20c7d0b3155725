package formatter

import (
	"net/url"
	"strconv"
	"strings"
)

// Posted attribute suffixes. Form fields are named <sanitized column>-<attr>,
// where the sanitized column name is the column name with spaces removed.
const (
	AttrLine          = "line"
	AttrLength        = "length"
	AttrColumn        = "column"
	AttrLabel         = "label"
	AttrJustifyData   = "justify-data"
	AttrJustifyLabel  = "justify-label"
	AttrIsInput       = "is-input"
	AttrIsPercent     = "is-percent"
	AttrDateFormat    = "date-format"
	AttrBeforeDecimal = "before-decimal"
	AttrAfterDecimal  = "after-decimal"
)

// FieldKey builds the posted form key for a column attribute.
func FieldKey(column, attr string) string {
	return strings.ReplaceAll(column, " ", "") + "-" + attr
}

// Submission is the flat key/value bag of a posted formatter configuration.
// Accessors are permissive the way form input always is: absent or malformed
// numbers read as zero, booleans are true only for the literal "Y".
type Submission map[string]string

// FromValues flattens parsed form values into a Submission, keeping the first
// value for each key.
func FromValues(values url.Values) Submission {
	sub := make(Submission, len(values))
	for key := range values {
		sub[key] = values.Get(key)
	}
	return sub
}

// Text returns the trimmed value for key, or "" when absent.
func (s Submission) Text(key string) string {
	return strings.TrimSpace(s[key])
}

// Int returns the value for key parsed as an integer, or 0 when the value is
// absent or not numeric.
func (s Submission) Int(key string) int {
	n, err := strconv.Atoi(s.Text(key))
	if err != nil {
		return 0
	}
	return n
}

// Flag reports whether the value for key is the literal "Y".
func (s Submission) Flag(key string) bool {
	return s.Text(key) == "Y"
}
