package models

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the representations the API has been observed to return for dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses s in any of the known API layouts.
//
// Layouts without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatDate normalizes s to YYYY-MM-DD using UTC calendar fields.
//
// The result does not depend on [time.Local], and FormatDate(FormatDate(s)) == FormatDate(s).
func FormatDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format("2006-01-02"), nil
}
