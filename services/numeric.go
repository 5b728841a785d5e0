package services

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numericCharset = regexp.MustCompile(`[^0-9.+-]`)
	widthPattern   = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)[wW]`)
	numberPattern  = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

// ParseAmount reads a numeric value out of human-authored cell text, tolerating
// currency symbols, thousands separators and unit suffixes ("₹5,400", "12 sqft").
// The second return reports whether a number was present at all: absence and
// zero are different answers and must stay that way downstream.
func ParseAmount(cell string) (float64, bool) {
	cleaned := numericCharset.ReplaceAllString(cell, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// amountPtr is ParseAmount shaped for optional fields: nil when the cell holds
// no number.
func amountPtr(cell string) *float64 {
	if v, ok := ParseAmount(cell); ok {
		return &v
	}
	return nil
}

// ExtractWidth pulls the width component out of a line-item size string such
// as "600Wx2100H". A number immediately suffixed with w/W wins; otherwise the
// first number in the string is taken; a size with no number counts as 0.
func ExtractWidth(size string) float64 {
	if m := widthPattern.FindStringSubmatch(size); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v
	}
	if m := numberPattern.FindString(size); m != "" {
		v, _ := strconv.ParseFloat(m, 64)
		return v
	}
	return 0
}

// cellAt returns the trimmed cell at idx, or "" when the row is short.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
