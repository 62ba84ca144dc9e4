package models

import "fmt"

const DefaultAlertThreshold = 20.0

// AlertRule triggers when the current price is at least Threshold percent
// below the highest price seen inside Window.
type AlertRule struct {
	Threshold float64   `json:"threshold"`
	Window    Timeframe `json:"period"`
}

// DefaultAlertRule returns the rule used when nothing was configured.
func DefaultAlertRule() AlertRule {
	return AlertRule{Threshold: DefaultAlertThreshold, Window: DefaultTimeframe}
}

// Validate checks the threshold is non-negative and the window is known.
// A zero threshold is allowed and fires on every symbol with data.
func (r AlertRule) Validate() error {
	if r.Threshold < 0 {
		return fmt.Errorf("alert threshold must be >= 0, got %v", r.Threshold)
	}
	if !r.Window.Valid() {
		return fmt.Errorf("invalid alert period %q", r.Window)
	}
	return nil
}

// TriggeredAlert is derived on demand and never persisted.
type TriggeredAlert struct {
	Symbol         string    `json:"symbol"`
	CurrentPrice   float64   `json:"currentPrice"`
	PeriodHigh     float64   `json:"periodHigh"`
	DropPercentage float64   `json:"dropPercentage"`
	Window         Timeframe `json:"period"`
}
