package services

import (
	"context"
	"time"

	"github.com/epeers/stockalert/internal/alerts"
	"github.com/epeers/stockalert/internal/models"
	log "github.com/sirupsen/logrus"
)

// RunCheck fetches symbols over the rule window and evaluates the rule once,
// the way the scheduled reporter does. Per-symbol failures are recorded in
// the summary and do not stop the check.
func RunCheck(ctx context.Context, quotes *QuoteService, symbols []string, rule models.AlertRule, now time.Time) alerts.CheckSummary {
	defer TrackTime("RunCheck", time.Now())
	log.Infof("Checking %d stocks for %.1f%% drops over %s", len(symbols), rule.Threshold, rule.Window)

	batch := quotes.FetchAll(ctx, symbols, rule.Window)
	summary := alerts.CheckSummary{
		Date:    now,
		Rule:    rule,
		Symbols: symbols,
		Alerts:  alerts.EvaluateAll(symbols, batch.Series, rule, now),
		Failed:  batch.FailedSymbols(),
	}

	switch batch.Status() {
	case BatchOutage:
		log.Errorf("No data retrieved for any of %d stocks", len(symbols))
	case BatchPartial:
		log.Warnf("Data unavailable for %d of %d stocks", len(summary.Failed), len(symbols))
	}
	log.Infof("Found %d alerts", len(summary.Alerts))
	return summary
}
