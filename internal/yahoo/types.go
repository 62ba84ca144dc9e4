package yahoo

// ChartResponse is the Yahoo Finance v8 chart payload. Every array element is
// nullable on the wire: the provider emits null for days without a print.
type ChartResponse struct {
	Chart ChartEnvelope `json:"chart"`
}

// ChartEnvelope wraps either results or an error.
type ChartEnvelope struct {
	Result []ChartResult `json:"result"`
	Error  *ChartError   `json:"error"`
}

// ChartError is the provider's error object, e.g. {"code":"Not Found"}.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult is the series for one symbol.
type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// ChartMeta carries display metadata.
type ChartMeta struct {
	Symbol               string   `json:"symbol"`
	Currency             string   `json:"currency"`
	LongName             string   `json:"longName"`
	ShortName            string   `json:"shortName"`
	ExchangeName         string   `json:"exchangeName"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
}

// Indicators holds the OHLCV arrays.
type Indicators struct {
	Quote []IndicatorQuote `json:"quote"`
}

// IndicatorQuote is one set of parallel OHLCV arrays.
type IndicatorQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// DisplayName picks longName, then shortName.
func (m ChartMeta) DisplayName() string {
	if m.LongName != "" {
		return m.LongName
	}
	return m.ShortName
}
