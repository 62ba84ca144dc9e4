package models

import (
	"encoding/json"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar day. The wrapped time is always midnight UTC so two Days
// for the same date compare equal with ==.
type Day struct {
	time.Time
}

// NewDay truncates t to its calendar day. No timezone conversion is applied:
// the year/month/day of t as given become the day.
func NewDay(t time.Time) Day {
	return Day{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// DayFromUnix converts epoch seconds into the UTC calendar day.
func DayFromUnix(sec int64) Day {
	return NewDay(time.Unix(sec, 0).UTC())
}

// ParseDay parses a "YYYY-MM-DD" string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, err
	}
	return Day{t}, nil
}

// MustDay is ParseDay for literals in tests and defaults; it panics on bad input.
func MustDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) String() string {
	return d.Format(dayLayout)
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.Time.Before(other.Time)
}

// UnmarshalJSON accepts both "YYYY-MM-DD" and RFC3339 timestamps.
func (d *Day) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		*d = NewDay(t)
		return nil
	}

	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the day as "YYYY-MM-DD".
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
