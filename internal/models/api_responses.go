package models

import "time"

// ErrorResponse is the error body of the proxy endpoints. Only Error is set
// on the stock endpoint to stay compatible with existing dashboards.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// AddSymbolRequest is the body of POST /api/watchlist
type AddSymbolRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// ConfirmAlertsRequest is the body of POST /api/alerts/confirm
type ConfirmAlertsRequest struct {
	Threshold *float64 `json:"threshold" binding:"required"`
	Period    string   `json:"period" binding:"required"`
}

// AlertsResponse lists the alerts triggered by the current rule.
type AlertsResponse struct {
	Rule     AlertRule        `json:"rule"`
	Alerts   []TriggeredAlert `json:"alerts"`
	Warnings []Warning        `json:"warnings,omitempty"`
}

// RefreshResponse summarises one refresh cycle.
type RefreshResponse struct {
	Status    string    `json:"status"`
	Requested int       `json:"requested"`
	Succeeded []string  `json:"succeeded"`
	Failed    []string  `json:"failed"`
	Warnings  []Warning `json:"warnings,omitempty"`
}

// WatchlistResponse is the watch-list with whatever series are loaded.
type WatchlistResponse struct {
	Symbols []string         `json:"symbols"`
	Stocks  []WatchlistEntry `json:"stocks"`
}

// WatchlistEntry is one row of the dashboard sidebar.
type WatchlistEntry struct {
	Symbol       string   `json:"symbol"`
	Color        string   `json:"color"`
	Loaded       bool     `json:"loaded"`
	Name         string   `json:"name,omitempty"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	Change       *float64 `json:"change24h,omitempty"`
	HasAlert     bool     `json:"hasAlert"`
}

// ChartResponse is the chart projection of the loaded series.
type ChartResponse struct {
	Timeframe Timeframe      `json:"timeframe"`
	Type      ChartType      `json:"type"`
	TimeUnit  string         `json:"timeUnit"`
	Days      int            `json:"days"` // nominal window length, for the axis caption
	Datasets  []ChartDataset `json:"datasets"`
	Warnings  []Warning      `json:"warnings,omitempty"`
}

// ChartDataset is one line (or volume bar) series of the chart.
type ChartDataset struct {
	Label  string       `json:"label"`
	Kind   string       `json:"kind"` // "line" or "bar"
	Color  string       `json:"color"`
	Axis   string       `json:"axis"` // "y" for price/percent, "y1" for volume
	Points []ChartPoint `json:"points"`
}

// ChartPoint is one x/y pair. Price is the actual close, kept for tooltips on
// percentage charts.
type ChartPoint struct {
	X     Day     `json:"x"`
	Y     float64 `json:"y"`
	Price float64 `json:"price,omitempty"`
}
