package models

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxWatchlistSize keeps the chart readable.
const MaxWatchlistSize = 8

// SettingsKey is the single key the settings blob is stored under.
const SettingsKey = "stockChartSettings"

// DefaultWatchlist is used by both the dashboard and the scheduled reporter.
var DefaultWatchlist = []string{"VOO", "QQQ", "FENY", "MSFT", "AAPL", "GOOGL", "TSLA", "XOM"}

var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-^=]{0,14}$`)

// ChartType selects absolute prices or percent change from the window start.
type ChartType string

const (
	ChartTypePrice      ChartType = "price"
	ChartTypePercentage ChartType = "percentage"
)

// ChartSettings are the dashboard chart preferences.
type ChartSettings struct {
	Type       ChartType `json:"type"`
	ShowVolume bool      `json:"showVolume"`
}

// Settings is the persisted user preference blob.
type Settings struct {
	SelectedStocks []string      `json:"selectedStocks"`
	ChartSettings  ChartSettings `json:"chartSettings"`
	AlertSettings  AlertRule     `json:"alertSettings"`
}

// DefaultSettings returns a fresh copy of the defaults.
func DefaultSettings() Settings {
	return Settings{
		SelectedStocks: append([]string(nil), DefaultWatchlist...),
		ChartSettings:  ChartSettings{Type: ChartTypePercentage, ShowVolume: false},
		AlertSettings:  DefaultAlertRule(),
	}
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidSymbol reports whether s (already normalized) looks like a ticker.
func ValidSymbol(s string) bool {
	return symbolPattern.MatchString(s)
}

// Validate checks the invariants of a settings blob: at most eight unique,
// well-formed symbols, a known chart type and a valid alert rule.
func (s Settings) Validate() error {
	if len(s.SelectedStocks) > MaxWatchlistSize {
		return fmt.Errorf("at most %d stocks may be selected, got %d", MaxWatchlistSize, len(s.SelectedStocks))
	}
	seen := make(map[string]struct{}, len(s.SelectedStocks))
	for _, sym := range s.SelectedStocks {
		if !ValidSymbol(sym) {
			return fmt.Errorf("invalid symbol %q", sym)
		}
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("duplicate symbol %q", sym)
		}
		seen[sym] = struct{}{}
	}
	if s.ChartSettings.Type != ChartTypePrice && s.ChartSettings.Type != ChartTypePercentage {
		return fmt.Errorf("invalid chart type %q", s.ChartSettings.Type)
	}
	return s.AlertSettings.Validate()
}

// Normalized upper-cases symbols and applies the volume rule: volume bars only
// make sense on the price chart, so turning them on switches the chart type.
func (s Settings) Normalized() Settings {
	out := s
	out.SelectedStocks = make([]string, 0, len(s.SelectedStocks))
	for _, sym := range s.SelectedStocks {
		out.SelectedStocks = append(out.SelectedStocks, NormalizeSymbol(sym))
	}
	if out.ChartSettings.ShowVolume {
		out.ChartSettings.Type = ChartTypePrice
	}
	return out
}
