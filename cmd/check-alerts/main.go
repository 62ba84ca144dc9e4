// Command check-alerts fetches the watch-list once, evaluates the drawdown
// rule and prints a report block for CI to turn into an issue. It exits 1
// when any alert fired or no data could be retrieved.
package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/epeers/stockalert/config"
	"github.com/epeers/stockalert/internal/alerts"
	"github.com/epeers/stockalert/internal/services"
	"github.com/epeers/stockalert/internal/yahoo"
	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, time.Now()))
}

// run writes the report to stdout and returns the exit code. Logs go to
// stderr so stdout carries only the report.
func run(ctx context.Context, stdout io.Writer, now time.Time) int {
	log.SetOutput(os.Stderr)

	cfg, err := config.LoadReporter()
	if err != nil {
		log.Errorf("Fatal error: %v", err)
		return 1
	}
	log.SetLevel(cfg.LogLevel)

	client := yahoo.NewClient(cfg.QuoteBaseURL, cfg.FetchTimeout, cfg.UpstreamRPS)
	quotes := services.NewQuoteService(client, nil, cfg.FetchTimeout)

	summary := services.RunCheck(ctx, quotes, cfg.Symbols, cfg.Rule, now)
	if err := alerts.WriteReport(stdout, alerts.BuildReport(summary)); err != nil {
		log.Errorf("Failed to write report: %v", err)
		return 1
	}
	return alerts.ExitCode(summary)
}
