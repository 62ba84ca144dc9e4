package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/epeers/stockalert/internal/models"
	log "github.com/sirupsen/logrus"
)

type warningKey struct{}

// WarningCollector gathers the non-fatal problems of one request or refresh
// cycle (symbols dropped, stale results, settings reset) so the handler can
// return them next to the data.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext attaches an empty collector to ctx.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningKey{}, wc), wc
}

// AddWarning records w on the collector carried by ctx. Without a collector
// the warning is only logged.
func AddWarning(ctx context.Context, w models.Warning) {
	log.Debugf("[%s] %s", w.Code, w.Message)

	wc, _ := ctx.Value(warningKey{}).(*WarningCollector)
	if wc == nil {
		return
	}
	wc.mu.Lock()
	wc.warnings = append(wc.warnings, w)
	wc.mu.Unlock()
}

// Warnf is AddWarning with a formatted message.
func Warnf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns a copy of the warnings collected so far, in order.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return slices.Clone(wc.warnings)
}

// Has reports whether any collected warning carries code.
func (wc *WarningCollector) Has(code models.WarningCode) bool {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return slices.ContainsFunc(wc.warnings, func(w models.Warning) bool { return w.Code == code })
}
