package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/shopspring/decimal"
)

const (
	ReportStartMarker = "---REPORT---"
	ReportEndMarker   = "---END REPORT---"
)

// Report is the {title, body} object the scheduled check emits for CI.
type Report struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CheckSummary is everything one scheduled check produced.
type CheckSummary struct {
	Date    time.Time
	Rule    models.AlertRule
	Symbols []string
	Alerts  []models.TriggeredAlert
	Failed  []string
}

// Outage reports whether no symbol could be checked at all.
func (s CheckSummary) Outage() bool {
	return len(s.Symbols) > 0 && len(s.Failed) >= len(s.Symbols)
}

// BuildReport renders the markdown report for a check.
func BuildReport(s CheckSummary) Report {
	var b strings.Builder
	b.WriteString("**Daily Stock Alert Check**\n\n")
	fmt.Fprintf(&b, "📅 Date: %s\n\n", s.Date.Format("1/2/2006"))

	var title string
	switch {
	case s.Outage():
		title = "❌ Stock Alert Check Failed: no data retrieved"
		fmt.Fprintf(&b, "❌ Could not fetch data for any of the %d monitored stocks.\n", len(s.Symbols))
	case len(s.Alerts) == 0:
		title = "✅ No Stock Alerts Triggered"
		b.WriteString("✅ No stocks met the alert criteria.\n")
	default:
		count := len(s.Alerts)
		title = fmt.Sprintf("🚨 Stock Alert: %d %s triggered", count, plural(count, "stock"))
		fmt.Fprintf(&b, "⚠️ **%d %s Triggered:**\n\n", count, plural(count, "Alert"))

		items := make([]string, 0, count)
		for _, a := range s.Alerts {
			items = append(items, fmt.Sprintf("- **%s**: Down %s%% from %s high\n  - Current: $%s\n  - High: $%s",
				a.Symbol,
				decimal.NewFromFloat(a.DropPercentage).StringFixed(1),
				a.Window,
				decimal.NewFromFloat(a.CurrentPrice).StringFixed(2),
				decimal.NewFromFloat(a.PeriodHigh).StringFixed(2),
			))
		}
		b.WriteString(strings.Join(items, "\n\n"))
		b.WriteString("\n")
	}

	if len(s.Failed) > 0 && !s.Outage() {
		fmt.Fprintf(&b, "\n⚠️ Data unavailable for: %s\n", strings.Join(s.Failed, ", "))
	}

	b.WriteString("\n**Settings:**\n")
	fmt.Fprintf(&b, "- Threshold: %s%%\n", decimal.NewFromFloat(s.Rule.Threshold).String())
	fmt.Fprintf(&b, "- Period: %s\n", s.Rule.Window)
	fmt.Fprintf(&b, "- Stocks Monitored: %s", strings.Join(s.Symbols, ", "))

	return Report{Title: title, Body: b.String()}
}

// WriteReport writes the report as indented JSON between the CI markers.
func WriteReport(w io.Writer, r Report) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", ReportStartMarker); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err := fmt.Fprintf(w, "%s\n\n", ReportEndMarker)
	return err
}

// ExitCode maps a check to the process exit status: 0 when nothing triggered,
// 1 when at least one alert triggered or no symbol could be checked.
func ExitCode(s CheckSummary) int {
	if len(s.Alerts) > 0 || s.Outage() {
		return 1
	}
	return 0
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
