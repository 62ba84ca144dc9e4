package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustNY(t *testing.T) *time.Location {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("should have loaded timezone America/New_York: %v", err)
	}
	return ny
}

func TestIsMarketHours(t *testing.T) {
	ny := mustNY(t)

	testCases := []struct {
		name     string
		input    time.Time
		expected bool
	}{
		{"Weekday before open", time.Date(2024, 7, 23, 8, 59, 0, 0, ny), false},
		{"Weekday at open", time.Date(2024, 7, 23, 9, 0, 0, 0, ny), true},
		{"Weekday midday", time.Date(2024, 7, 23, 12, 30, 0, 0, ny), true},
		{"Weekday last refresh hour", time.Date(2024, 7, 23, 16, 59, 0, 0, ny), true},
		{"Weekday after close", time.Date(2024, 7, 23, 17, 0, 0, 0, ny), false},
		{"Saturday midday", time.Date(2024, 7, 27, 12, 0, 0, 0, ny), false},
		{"Sunday midday", time.Date(2024, 7, 28, 12, 0, 0, 0, ny), false},
		{"UTC input converted", time.Date(2024, 7, 23, 14, 0, 0, 0, time.UTC), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsMarketHours(tc.input))
		})
	}
}

func TestNextMarketOpen(t *testing.T) {
	ny := mustNY(t)

	testCases := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Weekday before open",
			input:    time.Date(2024, 7, 23, 7, 0, 0, 0, ny), // Tuesday 7:00 AM
			expected: time.Date(2024, 7, 23, 9, 0, 0, 0, ny), // Tuesday 9:00 AM
		},
		{
			name:     "Weekday inside window",
			input:    time.Date(2024, 7, 23, 11, 15, 0, 0, ny),
			expected: time.Date(2024, 7, 23, 11, 15, 0, 0, ny),
		},
		{
			name:     "Weekday after close",
			input:    time.Date(2024, 7, 23, 18, 0, 0, 0, ny), // Tuesday 6:00 PM
			expected: time.Date(2024, 7, 24, 9, 0, 0, 0, ny),  // Wednesday 9:00 AM
		},
		{
			name:     "Friday after close",
			input:    time.Date(2024, 7, 26, 18, 0, 0, 0, ny), // Friday 6:00 PM
			expected: time.Date(2024, 7, 29, 9, 0, 0, 0, ny),  // Monday 9:00 AM
		},
		{
			name:     "Saturday",
			input:    time.Date(2024, 7, 27, 12, 0, 0, 0, ny),
			expected: time.Date(2024, 7, 29, 9, 0, 0, 0, ny),
		},
		{
			name:     "Sunday before nine",
			input:    time.Date(2024, 7, 28, 6, 0, 0, 0, ny),
			expected: time.Date(2024, 7, 29, 9, 0, 0, 0, ny),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := NextMarketOpen(tc.input)
			assert.True(t, tc.expected.Equal(result), "expected %v, got %v", tc.expected.UTC(), result)
			assert.Equal(t, time.UTC, result.Location())
		})
	}
}
