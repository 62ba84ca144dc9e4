package models

import (
	"fmt"
	"strings"
)

// Timeframe is a named trailing window used for both charting and alerting.
type Timeframe string

const (
	Timeframe1M Timeframe = "1M"
	Timeframe3M Timeframe = "3M"
	Timeframe6M Timeframe = "6M"
	Timeframe1Y Timeframe = "1Y"

	DefaultTimeframe = Timeframe3M
)

// Timeframes lists the supported windows, shortest first.
var Timeframes = []Timeframe{Timeframe1M, Timeframe3M, Timeframe6M, Timeframe1Y}

// ParseTimeframe validates a window name. Matching is case-insensitive.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToUpper(strings.TrimSpace(s)))
	if tf.Valid() {
		return tf, nil
	}
	return "", fmt.Errorf("invalid timeframe %q (want one of 1M, 3M, 6M, 1Y)", s)
}

// TimeframeOrDefault parses s and falls back to DefaultTimeframe when s is
// empty or unknown, the way the proxy endpoint treats its query parameter.
func TimeframeOrDefault(s string) Timeframe {
	tf, err := ParseTimeframe(s)
	if err != nil {
		return DefaultTimeframe
	}
	return tf
}

// Valid reports whether tf is one of the supported windows.
func (tf Timeframe) Valid() bool {
	switch tf {
	case Timeframe1M, Timeframe3M, Timeframe6M, Timeframe1Y:
		return true
	}
	return false
}

// Months is the nominal window length in calendar months.
func (tf Timeframe) Months() int {
	switch tf {
	case Timeframe1M:
		return 1
	case Timeframe6M:
		return 6
	case Timeframe1Y:
		return 12
	default:
		return 3
	}
}

// ApproxDays is the fixed day-count approximation of the window (30/90/180/365).
// Reported on chart responses as a caption; filtering works in calendar months.
func (tf Timeframe) ApproxDays() int {
	switch tf {
	case Timeframe1M:
		return 30
	case Timeframe6M:
		return 180
	case Timeframe1Y:
		return 365
	default:
		return 90
	}
}
