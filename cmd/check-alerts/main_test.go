package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/epeers/stockalert/internal/alerts"
	"github.com/epeers/stockalert/internal/yahoo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createMockChartServer serves ten daily closes per known symbol, the last one
// being last[symbol]; unknown symbols get a 404.
func createMockChartServer(t *testing.T, now time.Time, last map[string]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/")
		price, ok := last[symbol]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
			return
		}

		var quote yahoo.IndicatorQuote
		result := yahoo.ChartResult{Meta: yahoo.ChartMeta{Symbol: symbol, LongName: symbol + " Inc."}}
		for i := 9; i >= 0; i-- {
			c := 100.0
			if i == 0 {
				c = price
			}
			vol := int64(1000)
			result.Timestamp = append(result.Timestamp, now.AddDate(0, 0, -i).Unix())
			quote.Close = append(quote.Close, &c)
			quote.Volume = append(quote.Volume, &vol)
		}
		result.Indicators.Quote = []yahoo.IndicatorQuote{quote}
		json.NewEncoder(w).Encode(yahoo.ChartResponse{Chart: yahoo.ChartEnvelope{Result: []yahoo.ChartResult{result}}})
	}))
}

func setReporterEnv(t *testing.T, baseURL, stocks string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", baseURL)
	t.Setenv("QUOTE_BASE_URL", "")
	t.Setenv("WATCH_STOCKS", stocks)
	t.Setenv("ALERT_THRESHOLD", "20")
	t.Setenv("ALERT_PERIOD", "1M")
	t.Setenv("UPSTREAM_RPS", "0")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "error")
}

// parseReport extracts the JSON between the report markers.
func parseReport(t *testing.T, out string) alerts.Report {
	t.Helper()
	start := strings.Index(out, alerts.ReportStartMarker)
	end := strings.Index(out, alerts.ReportEndMarker)
	require.True(t, start >= 0 && end > start, "report markers missing in %q", out)

	var report alerts.Report
	require.NoError(t, json.Unmarshal([]byte(out[start+len(alerts.ReportStartMarker):end]), &report))
	return report
}

func TestRun_AlertsTriggered(t *testing.T) {
	now := time.Now()
	server := createMockChartServer(t, now, map[string]float64{"DROP": 70, "FLAT": 100})
	defer server.Close()
	setReporterEnv(t, server.URL, "FLAT,DROP,GONE")

	var stdout bytes.Buffer
	code := run(context.Background(), &stdout, now)

	assert.Equal(t, 1, code)
	report := parseReport(t, stdout.String())
	assert.Equal(t, "🚨 Stock Alert: 1 stock triggered", report.Title)
	assert.Contains(t, report.Body, "**DROP**: Down 30.0% from 1M high")
	assert.Contains(t, report.Body, "Data unavailable for: GONE")
}

func TestRun_NoAlerts(t *testing.T) {
	now := time.Now()
	server := createMockChartServer(t, now, map[string]float64{"FLAT": 100})
	defer server.Close()
	setReporterEnv(t, server.URL, "FLAT")

	var stdout bytes.Buffer
	code := run(context.Background(), &stdout, now)

	assert.Equal(t, 0, code)
	assert.Equal(t, "✅ No Stock Alerts Triggered", parseReport(t, stdout.String()).Title)
}

func TestRun_TotalOutage(t *testing.T) {
	now := time.Now()
	server := createMockChartServer(t, now, map[string]float64{})
	defer server.Close()
	setReporterEnv(t, server.URL, "VOO,QQQ")

	var stdout bytes.Buffer
	code := run(context.Background(), &stdout, now)

	assert.Equal(t, 1, code)
	assert.Contains(t, parseReport(t, stdout.String()).Title, "Failed")
}

func TestRun_BadConfig(t *testing.T) {
	setReporterEnv(t, "http://unused", "VOO")
	t.Setenv("ALERT_PERIOD", "5Y")

	var stdout bytes.Buffer
	code := run(context.Background(), &stdout, time.Now())

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String(), "no report is printed for a fatal configuration error")
}
