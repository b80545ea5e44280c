package util

import "time"

// CompactDateLayout is the yyyyMMdd wire format the legacy core expects.
const CompactDateLayout = "20060102"

// FormatCompactDate renders t as yyyyMMdd pinned to UTC. The pin matters:
// formatting in the local zone shifts the calendar day for timestamps near
// midnight.
func FormatCompactDate(t time.Time) string {
	return t.UTC().Format(CompactDateLayout)
}

// ParseCompactDate parses a yyyyMMdd value as a UTC calendar day.
func ParseCompactDate(s string) (time.Time, error) {
	return time.ParseInLocation(CompactDateLayout, s, time.UTC)
}
