package app

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// maxFieldDigits keeps field values well inside int range.
const maxFieldDigits = 6

// NumericField is a digits-only text box.
type NumericField struct {
	Label   string
	text    string
	enabled bool
}

// NewNumericField creates an enabled field holding value.
func NewNumericField(label string, value int) *NumericField {
	return &NumericField{Label: label, text: strconv.Itoa(value), enabled: true}
}

// Text returns the raw field contents.
func (f *NumericField) Text() string { return f.text }

// Value parses the field; an empty field is 0.
func (f *NumericField) Value() int {
	if f.text == "" {
		return 0
	}
	v, err := strconv.Atoi(f.text)
	if err != nil {
		return 0
	}
	return v
}

// Enabled reports whether the field accepts edits.
func (f *NumericField) Enabled() bool { return f.enabled }

// SetEnabled toggles editing.
func (f *NumericField) SetEnabled(on bool) { f.enabled = on }

// Insert appends the digits of s, reporting whether anything changed.
// Full-width digits are folded to ASCII first; other characters are dropped.
func (f *NumericField) Insert(s string) bool {
	if !f.enabled {
		return false
	}
	digits := filterDigits(s)
	if digits == "" {
		return false
	}

	text := strings.TrimLeft(f.text+digits, "0")
	if text == "" {
		text = "0"
	}
	if len(text) > maxFieldDigits {
		return false
	}
	changed := text != f.text
	f.text = text
	return changed
}

// Erase removes the last character.
func (f *NumericField) Erase() bool {
	if !f.enabled || f.text == "" {
		return false
	}
	f.text = f.text[:len(f.text)-1]
	return true
}

func filterDigits(s string) string {
	var b strings.Builder
	for _, r := range width.Narrow.String(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
