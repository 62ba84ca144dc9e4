package models

// PricePoint is one trading day of a series.
type PricePoint struct {
	Date   Day     `json:"date"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// QuoteSeries is a normalized daily series for one symbol. Points are ordered
// ascending by date and are never empty for a series built by the normalizer.
type QuoteSeries struct {
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	Points       []PricePoint `json:"data"`
	CurrentPrice float64      `json:"currentPrice"`
	Change       float64      `json:"change24h"`
}

// NormalizedPoint is a point rebased to percent change from the first point of
// its window.
type NormalizedPoint struct {
	Date       Day     `json:"date"`
	Price      float64 `json:"price"`
	Normalized float64 `json:"normalizedPrice"`
}

// RawSeries is the provider's series after schema validation: parallel arrays
// where a nil close marks a missing day and a nil volume means zero.
type RawSeries struct {
	Symbol     string
	Name       string
	Timestamps []int64
	Closes     []*float64
	Volumes    []*int64
}
