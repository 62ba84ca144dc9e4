// Package yahoo is the quote source adapter: it fetches daily chart data from
// the Yahoo Finance v8 chart API and validates the payload shape.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/epeers/stockalert/internal/series"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public chart endpoint; the symbol is appended as a path segment.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

const userAgent = "Mozilla/5.0 (compatible; stockalert/1.0)"

// Client is an HTTP client for the Yahoo chart API
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a Yahoo chart client. An empty baseURL uses DefaultBaseURL;
// requestsPerSecond <= 0 disables pacing.
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "application/json")

	limit := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
		burst = int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
	}

	return &Client{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// GetChart fetches the daily series for symbol covering tf up to now. All
// failures, including malformed or empty payloads, come back as
// *models.UpstreamError.
func (c *Client) GetChart(ctx context.Context, symbol string, tf models.Timeframe, now time.Time) (*models.RawSeries, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, models.NewUpstreamError(symbol, 0, "request not sent", err)
	}

	start := series.StartDate(tf, now)
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(now.Unix(), 10),
			"interval": "1d",
		}).
		Get("/{symbol}")
	if err != nil {
		return nil, models.NewUpstreamError(symbol, 0, "request failed", err)
	}

	var chart ChartResponse
	parseErr := json.Unmarshal(resp.Body(), &chart)

	if resp.StatusCode() != http.StatusOK {
		cause := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode())
		if parseErr == nil && chart.Chart.Error != nil {
			cause = fmt.Sprintf("%s (%s)", cause, chart.Chart.Error.describe())
		}
		return nil, models.NewUpstreamError(symbol, resp.StatusCode(), cause, nil)
	}
	if parseErr != nil {
		return nil, models.NewUpstreamError(symbol, resp.StatusCode(), "malformed response", parseErr)
	}

	raw, err := toRawSeries(symbol, &chart)
	if err != nil {
		return nil, err
	}
	log.Debugf("GetChart: %s returned %d timestamps", symbol, len(raw.Timestamps))
	return raw, nil
}

// toRawSeries validates the payload shape before anything downstream sees it.
func toRawSeries(symbol string, chart *ChartResponse) (*models.RawSeries, error) {
	if chart.Chart.Error != nil {
		return nil, models.NewUpstreamError(symbol, http.StatusOK, chart.Chart.Error.describe(), nil)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, models.NewUpstreamError(symbol, http.StatusOK, "No data found for symbol: "+symbol, nil)
	}

	result := chart.Chart.Result[0]
	if result.Timestamp == nil || len(result.Indicators.Quote) == 0 || result.Indicators.Quote[0].Close == nil {
		return nil, models.NewUpstreamError(symbol, http.StatusOK, "Invalid data format for symbol: "+symbol, nil)
	}

	quote := result.Indicators.Quote[0]
	return &models.RawSeries{
		Symbol:     symbol,
		Name:       result.Meta.DisplayName(),
		Timestamps: result.Timestamp,
		Closes:     quote.Close,
		Volumes:    quote.Volume,
	}, nil
}

func (e *ChartError) describe() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}
