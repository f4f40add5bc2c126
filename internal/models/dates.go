package models

import (
	"fmt"
	"time"
)

// Date fields arrive from the store in one of two shapes: a raw string
// written by a client, or a store-native timestamp. ISOString is the single
// normalization point applied at every read boundary.

// ISOString normalizes a document date field to an ISO-8601 string.
// Strings pass through unchanged; store timestamps are rendered in UTC.
// Anything else normalizes to "".
func ISOString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	}
	return ""
}

// ParseTime parses a client-supplied date string. RFC3339 is the canonical
// format; a bare YYYY-MM-DD date is accepted for convenience.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use RFC3339 or YYYY-MM-DD", s)
}
