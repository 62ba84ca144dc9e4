package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/epeers/stockalert/internal/alerts"
	"github.com/epeers/stockalert/internal/models"
	"github.com/epeers/stockalert/internal/series"
	log "github.com/sirupsen/logrus"
)

// SessionTimeframe is the window the session loads for every symbol. Chart
// and alert windows are filtered out of it, so both read the same series.
const SessionTimeframe = models.Timeframe1Y

var (
	ErrWatchlistFull   = fmt.Errorf("watch-list already has %d symbols", models.MaxWatchlistSize)
	ErrDuplicateSymbol = errors.New("symbol is already on the watch-list")
	ErrInvalidSymbol   = errors.New("invalid symbol")
	ErrSymbolNotFound  = errors.New("symbol is not on the watch-list")
)

// SettingsStore persists the settings blob.
type SettingsStore interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}

// Snapshot is an immutable view of the loaded watch-list. Readers never see a
// half-applied refresh.
type Snapshot struct {
	Symbols     []string
	Series      map[string]*models.QuoteSeries
	RefreshedAt time.Time
}

// Get returns the series for symbol, if loaded.
func (s *Snapshot) Get(symbol string) (*models.QuoteSeries, bool) {
	qs, ok := s.Series[symbol]
	return qs, ok
}

// Session owns the watch-list state for the process: settings, loaded
// series and the last computed alerts.
type Session struct {
	quotes *QuoteService
	store  SettingsStore
	now    func() time.Time

	mu       sync.Mutex // serializes settings and alert changes
	settings models.Settings
	alerts   []models.TriggeredAlert

	snap atomic.Pointer[Snapshot]
}

// NewSession loads persisted settings, falling back to defaults when they are
// missing or malformed.
func NewSession(ctx context.Context, quotes *QuoteService, store SettingsStore) *Session {
	s := &Session{
		quotes: quotes,
		store:  store,
		now:    time.Now,
		alerts: []models.TriggeredAlert{},
	}

	settings, err := store.Load(ctx)
	if err != nil {
		var cfgErr *models.ConfigError
		if errors.As(err, &cfgErr) {
			log.Warnf("Persisted settings are invalid, using defaults: %v", err)
			AddWarning(ctx, models.Warning{Code: models.WarnSettingsReset, Message: err.Error()})
		} else {
			log.Errorf("Failed to load settings, using defaults: %v", err)
		}
		settings = models.DefaultSettings()
	}
	s.settings = settings

	s.snap.Store(&Snapshot{
		Symbols: slices.Clone(settings.SelectedStocks),
		Series:  map[string]*models.QuoteSeries{},
	})
	return s
}

// Snapshot returns the current view of the loaded series.
func (s *Session) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSettings(s.settings)
}

// Alerts returns the current rule and the alerts it last triggered.
func (s *Session) Alerts() (models.AlertRule, []models.TriggeredAlert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.AlertSettings, slices.Clone(s.alerts)
}

// Refresh refetches every watched symbol and swaps in the results. On a total
// outage the previous snapshot is kept. Alerts are recomputed against the new
// data.
func (s *Session) Refresh(ctx context.Context) *BatchResult {
	defer TrackTime("Session.Refresh", time.Now())
	symbols := s.Snapshot().Symbols
	batch := s.quotes.FetchAll(ctx, symbols, SessionTimeframe)
	if batch.Status() == BatchOutage {
		log.Errorf("Refresh: no data retrieved for %d symbols, keeping previous snapshot", len(symbols))
		return batch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snap.Load()
	next := &Snapshot{
		Symbols:     current.Symbols,
		Series:      make(map[string]*models.QuoteSeries, len(current.Symbols)),
		RefreshedAt: s.now(),
	}
	for _, sym := range current.Symbols {
		if qs, ok := batch.Series[sym]; ok {
			next.Series[sym] = qs
		} else if !slices.Contains(symbols, sym) {
			// added while the refresh was in flight
			if qs, ok := current.Series[sym]; ok {
				next.Series[sym] = qs
			}
		}
	}
	for sym := range batch.Series {
		if !slices.Contains(current.Symbols, sym) {
			log.Debugf("Refresh: discarding result for removed symbol %s", sym)
			AddWarning(ctx, models.Warning{
				Code:    models.WarnStaleResult,
				Message: sym + " was removed during refresh",
			})
		}
	}
	s.snap.Store(next)
	s.recomputeLocked(ctx, next)
	return batch
}

// AddSymbol fetches symbol and, if that succeeds, appends it to the
// watch-list.
func (s *Session) AddSymbol(ctx context.Context, symbol string) (*models.QuoteSeries, error) {
	symbol = models.NormalizeSymbol(symbol)
	if !models.ValidSymbol(symbol) {
		return nil, fmt.Errorf("%q: %w", symbol, ErrInvalidSymbol)
	}
	if err := checkAddable(s.Snapshot().Symbols, symbol); err != nil {
		return nil, err
	}

	qs, err := s.quotes.Fetch(ctx, symbol, SessionTimeframe)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snap.Load()
	// the list may have changed while fetching
	if err := checkAddable(current.Symbols, symbol); err != nil {
		return nil, err
	}
	next := current.with(append(slices.Clone(current.Symbols), symbol))
	next.Series[symbol] = qs
	s.snap.Store(next)

	s.settings.SelectedStocks = slices.Clone(next.Symbols)
	s.persistLocked(ctx)
	log.Infof("Added %s to watch-list", symbol)
	return qs, nil
}

// RemoveSymbol drops symbol, its loaded series, cached data and alerts.
func (s *Session) RemoveSymbol(ctx context.Context, symbol string) error {
	symbol = models.NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snap.Load()
	idx := slices.Index(current.Symbols, symbol)
	if idx < 0 {
		return fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	s.snap.Store(current.with(slices.Delete(slices.Clone(current.Symbols), idx, idx+1)))
	if s.quotes.cache != nil {
		s.quotes.cache.Invalidate(symbol)
	}

	s.alerts = slices.DeleteFunc(s.alerts, func(a models.TriggeredAlert) bool {
		return a.Symbol == symbol
	})
	s.settings.SelectedStocks = slices.Clone(s.snap.Load().Symbols)
	s.persistLocked(ctx)
	log.Infof("Removed %s from watch-list", symbol)
	return nil
}

// ConfirmRule stores rule and recomputes alerts over every loaded series.
func (s *Session) ConfirmRule(ctx context.Context, rule models.AlertRule) ([]models.TriggeredAlert, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.AlertSettings = rule
	s.persistLocked(ctx)
	s.recomputeLocked(ctx, s.snap.Load())
	return slices.Clone(s.alerts), nil
}

// UpdateSettings replaces the settings. Symbols dropped from the watch-list
// lose their loaded series; new symbols load on the next refresh.
func (s *Session) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	settings = settings.Normalized()
	if err := settings.Validate(); err != nil {
		return models.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snap.Load()
	if !slices.Equal(current.Symbols, settings.SelectedStocks) {
		s.snap.Store(current.with(slices.Clone(settings.SelectedStocks)))
	}
	s.settings = cloneSettings(settings)
	s.persistLocked(ctx)
	s.recomputeLocked(ctx, s.snap.Load())
	return cloneSettings(s.settings), nil
}

func (s *Session) recomputeLocked(ctx context.Context, snap *Snapshot) {
	rule := s.settings.AlertSettings
	now := s.now()
	for _, sym := range snap.Symbols {
		qs, ok := snap.Series[sym]
		if !ok || len(series.FilterByTimeframe(qs.Points, rule.Window, now)) == 0 {
			Warnf(ctx, models.WarnNoWindowData, "%s has no data in the %s window", sym, rule.Window)
		}
	}
	s.alerts = alerts.EvaluateAll(snap.Symbols, snap.Series, rule, now)
}

func (s *Session) persistLocked(ctx context.Context) {
	if err := s.store.Save(ctx, cloneSettings(s.settings)); err != nil {
		log.Errorf("Failed to save settings: %v", err)
	}
}

// with returns a copy of the snapshot for a new symbol list, keeping only the
// series of symbols still on it.
func (s *Snapshot) with(symbols []string) *Snapshot {
	next := &Snapshot{
		Symbols:     symbols,
		Series:      make(map[string]*models.QuoteSeries, len(symbols)),
		RefreshedAt: s.RefreshedAt,
	}
	for _, sym := range symbols {
		if qs, ok := s.Series[sym]; ok {
			next.Series[sym] = qs
		}
	}
	return next
}

func checkAddable(symbols []string, symbol string) error {
	if slices.Contains(symbols, symbol) {
		return fmt.Errorf("%s: %w", symbol, ErrDuplicateSymbol)
	}
	if len(symbols) >= models.MaxWatchlistSize {
		return ErrWatchlistFull
	}
	return nil
}

func cloneSettings(s models.Settings) models.Settings {
	s.SelectedStocks = slices.Clone(s.SelectedStocks)
	return s
}
