package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCompactDate_PinnedToUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/Montevideo")
	require.NoError(t, err)

	// 23:30 in Montevideo is already the next day in UTC.
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, "20250311", FormatCompactDate(late))

	noon := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	assert.Equal(t, "20250310", FormatCompactDate(noon))
}

func TestCompactDate_RoundTrip(t *testing.T) {
	for _, loc := range []*time.Location{time.UTC, time.FixedZone("UYT", -3*3600), time.FixedZone("KST", 9*3600)} {
		day := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC).In(loc)

		formatted := FormatCompactDate(day)
		parsed, err := ParseCompactDate(formatted)
		require.NoError(t, err)

		// The calendar day survives regardless of the source zone.
		assert.Equal(t, formatted, FormatCompactDate(parsed))
	}
}

func TestParseCompactDate_Invalid(t *testing.T) {
	_, err := ParseCompactDate("2025-12-31")
	assert.Error(t, err)

	_, err = ParseCompactDate("")
	assert.Error(t, err)
}
