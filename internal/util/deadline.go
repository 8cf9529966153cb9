package util

import (
	"fmt"
	"strings"
	"time"
)

// DeadlineLayouts are the accepted deadline input formats, tried in order.
// All except RFC 3339 are interpreted in the local time zone.
var DeadlineLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseDeadline parses a user supplied deadline. A date without a time means
// midnight at the start of that day.
func ParseDeadline(s string) (time.Time, error) {
	return ParseDeadlineIn(s, time.Local)
}

// ParseDeadlineIn is ParseDeadline with an explicit location.
func ParseDeadlineIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty deadline")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range DeadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM, MM/DD/YYYY or RFC 3339)", s)
}
