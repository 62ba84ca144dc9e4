// Package alerts evaluates the drawdown-from-period-high rule and renders the
// scheduled check report.
package alerts

import (
	"time"

	"github.com/epeers/stockalert/internal/models"
	"github.com/epeers/stockalert/internal/series"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Evaluate applies rule to one series. The period high comes from the points
// inside rule.Window; the current price is always the latest known price, even
// when it postdates the window. A window with no points is not an error, it
// simply cannot trigger.
//
// A threshold of 0 triggers for every symbol that has window data, including
// one sitting exactly at its high.
func Evaluate(qs *models.QuoteSeries, rule models.AlertRule, now time.Time) (*models.TriggeredAlert, bool) {
	if qs == nil || len(qs.Points) == 0 {
		return nil, false
	}

	windowed := series.FilterByTimeframe(qs.Points, rule.Window, now)
	if len(windowed) == 0 {
		return nil, false
	}

	periodHigh := windowed[0].Price
	for _, p := range windowed[1:] {
		if p.Price > periodHigh {
			periodHigh = p.Price
		}
	}
	if periodHigh <= 0 {
		return nil, false
	}

	current := qs.CurrentPrice
	drop := (periodHigh - current) / periodHigh * 100
	if drop < rule.Threshold {
		return nil, false
	}

	return &models.TriggeredAlert{
		Symbol:         qs.Symbol,
		CurrentPrice:   current,
		PeriodHigh:     periodHigh,
		DropPercentage: RoundPercent(drop),
		Window:         rule.Window,
	}, true
}

// EvaluateAll runs Evaluate over the watch-list in its display order. Symbols
// without a series are skipped; the aggregate never fails.
func EvaluateAll(order []string, bySymbol map[string]*models.QuoteSeries, rule models.AlertRule, now time.Time) []models.TriggeredAlert {
	triggered := make([]models.TriggeredAlert, 0)
	for _, symbol := range order {
		qs, ok := bySymbol[symbol]
		if !ok || qs == nil || len(qs.Points) == 0 {
			log.Debugf("EvaluateAll: no data for %s, skipping", symbol)
			continue
		}

		alert, hit := Evaluate(qs, rule, now)
		if !hit {
			continue
		}
		log.Infof("Alert: %s down %.1f%% from %s high", alert.Symbol, alert.DropPercentage, alert.Window)
		triggered = append(triggered, *alert)
	}
	return triggered
}

// RoundPercent rounds to one fractional digit, half away from zero.
func RoundPercent(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return rounded
}
