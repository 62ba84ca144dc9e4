package alerts

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportDate = time.Date(2024, 7, 18, 21, 0, 0, 0, time.UTC)

func TestBuildReport_NoAlerts(t *testing.T) {
	r := BuildReport(CheckSummary{
		Date:    reportDate,
		Rule:    models.AlertRule{Threshold: 20, Window: models.Timeframe3M},
		Symbols: []string{"VOO", "QQQ"},
	})

	assert.Equal(t, "✅ No Stock Alerts Triggered", r.Title)
	assert.Contains(t, r.Body, "📅 Date: 7/18/2024")
	assert.Contains(t, r.Body, "✅ No stocks met the alert criteria.")
	assert.Contains(t, r.Body, "- Threshold: 20%")
	assert.Contains(t, r.Body, "- Period: 3M")
	assert.True(t, strings.HasSuffix(r.Body, "- Stocks Monitored: VOO, QQQ"))
}

func TestBuildReport_WithAlerts(t *testing.T) {
	r := BuildReport(CheckSummary{
		Date:    reportDate,
		Rule:    models.AlertRule{Threshold: 12.5, Window: models.Timeframe6M},
		Symbols: []string{"TSLA", "XOM", "MSFT"},
		Alerts: []models.TriggeredAlert{
			{Symbol: "TSLA", CurrentPrice: 120, PeriodHigh: 300, DropPercentage: 60, Window: models.Timeframe6M},
			{Symbol: "MSFT", CurrentPrice: 401.234, PeriodHigh: 468.35, DropPercentage: 14.3, Window: models.Timeframe6M},
		},
		Failed: []string{"XOM"},
	})

	assert.Equal(t, "🚨 Stock Alert: 2 stocks triggered", r.Title)
	assert.Contains(t, r.Body, "⚠️ **2 Alerts Triggered:**")
	assert.Contains(t, r.Body, "- **TSLA**: Down 60.0% from 6M high\n  - Current: $120.00\n  - High: $300.00")
	assert.Contains(t, r.Body, "- **MSFT**: Down 14.3% from 6M high\n  - Current: $401.23\n  - High: $468.35")
	assert.Contains(t, r.Body, "Data unavailable for: XOM")
	assert.Contains(t, r.Body, "- Threshold: 12.5%")
}

func TestBuildReport_SingleAlertIsSingular(t *testing.T) {
	r := BuildReport(CheckSummary{
		Date:    reportDate,
		Rule:    models.DefaultAlertRule(),
		Symbols: []string{"QQQ"},
		Alerts:  []models.TriggeredAlert{{Symbol: "QQQ", CurrentPrice: 70, PeriodHigh: 100, DropPercentage: 30, Window: models.Timeframe3M}},
	})

	assert.Equal(t, "🚨 Stock Alert: 1 stock triggered", r.Title)
	assert.Contains(t, r.Body, "**1 Alert Triggered:**")
}

func TestBuildReport_Outage(t *testing.T) {
	s := CheckSummary{
		Date:    reportDate,
		Rule:    models.DefaultAlertRule(),
		Symbols: []string{"VOO", "QQQ"},
		Failed:  []string{"VOO", "QQQ"},
	}
	r := BuildReport(s)

	assert.True(t, s.Outage())
	assert.Contains(t, r.Title, "Failed")
	assert.NotContains(t, r.Body, "Data unavailable for")
	assert.Equal(t, 1, ExitCode(s))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(CheckSummary{Symbols: []string{"VOO"}}))
	assert.Equal(t, 0, ExitCode(CheckSummary{Symbols: []string{"VOO", "QQQ"}, Failed: []string{"QQQ"}}))
	assert.Equal(t, 1, ExitCode(CheckSummary{Symbols: []string{"VOO"}, Alerts: []models.TriggeredAlert{{Symbol: "VOO"}}}))
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, Report{Title: "t & <b>", Body: "line1\nline2"}))

	out := buf.String()
	start := strings.Index(out, ReportStartMarker+"\n")
	end := strings.Index(out, ReportEndMarker)
	require.True(t, start >= 0 && end > start, "markers missing in %q", out)

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(out[start+len(ReportStartMarker)+1:end]), &decoded))
	assert.Equal(t, "t & <b>", decoded.Title)
	assert.Equal(t, "line1\nline2", decoded.Body)
	assert.Contains(t, out, `"title": "t & <b>"`, "report should be indented and not HTML-escaped")
}
