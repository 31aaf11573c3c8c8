// Package dateutils provides the date and time conversions used by Fedwire
// payloads and ISO 20022 documents.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutCycle    = "20060102"
	DateTimeLayoutISO  = time.RFC3339
	DateTimeLayoutFile = "20060102_150405"
)

var spaces = regexp.MustCompile(`\s+`)

// CycleDateToISO converts a Fedwire cycle date (YYYYMMDD) to an ISO date
// (YYYY-MM-DD).
func CycleDateToISO(cycleDate string) (string, error) {
	t, err := ParseCycleDate(cycleDate)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// ParseCycleDate parses a YYYYMMDD cycle date.
func ParseCycleDate(cycleDate string) (time.Time, error) {
	t, err := time.Parse(DateLayoutCycle, CleanDateString(cycleDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cycle date '%s': %w", cycleDate, err)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// FormatTimestamp renders t as an ISODateTime in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(DateTimeLayoutISO)
}

// FileStamp formats t for use in generated file names (YYYYMMDD_HHMMSS).
func FileStamp(t time.Time) string {
	return t.Format(DateTimeLayoutFile)
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

