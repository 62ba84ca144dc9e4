package util

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Refresh window in New York time. The close hour is inclusive so the last
// refresh of the day still picks up the 16:00 print.
const (
	marketOpenHour  = 9
	marketCloseHour = 16
)

// MarketLocation returns America/New_York, falling back to UTC when the zone
// database is missing.
func MarketLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		log.Errorf("Failed to load location 'America/New_York': %v. Falling back to UTC.", err)
		return time.UTC
	}
	return loc
}

func isWeekday(t time.Time) bool {
	return t.Weekday() >= time.Monday && t.Weekday() <= time.Friday
}

// IsMarketHours reports whether t falls on a weekday between 09:00 and 16:59
// New York time. Exchange holidays are not modelled.
func IsMarketHours(t time.Time) bool {
	nowET := t.In(MarketLocation())
	if !isWeekday(nowET) {
		return false
	}
	return nowET.Hour() >= marketOpenHour && nowET.Hour() <= marketCloseHour
}

// NextMarketOpen returns the start of the next refresh window at or after t,
// in UTC. Inside the window it returns t unchanged.
func NextMarketOpen(t time.Time) time.Time {
	if IsMarketHours(t) {
		return t.UTC()
	}
	loc := MarketLocation()
	nowET := t.In(loc)

	next := time.Date(nowET.Year(), nowET.Month(), nowET.Day(), marketOpenHour, 0, 0, 0, loc)
	if !nowET.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	for !isWeekday(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.UTC()
}
