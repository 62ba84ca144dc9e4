package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/stockalert/internal/cache"
	"github.com/epeers/stockalert/internal/models"
	"github.com/epeers/stockalert/internal/series"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultFetchConcurrency bounds the fan-out of a batch fetch. A full
// watch-list fits in one wave.
const DefaultFetchConcurrency = models.MaxWatchlistSize

// ChartFetcher is the upstream quote source (the Yahoo client in production).
type ChartFetcher interface {
	GetChart(ctx context.Context, symbol string, tf models.Timeframe, now time.Time) (*models.RawSeries, error)
}

// QuoteService turns upstream chart data into normalized series, with an
// in-memory cache and duplicate-request collapsing in front of the provider.
type QuoteService struct {
	fetcher      ChartFetcher
	cache        *cache.MemoryCache
	group        singleflight.Group
	fetchTimeout time.Duration
	concurrency  int
	now          func() time.Time
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(fetcher ChartFetcher, memCache *cache.MemoryCache, fetchTimeout time.Duration) *QuoteService {
	return &QuoteService{
		fetcher:      fetcher,
		cache:        memCache,
		fetchTimeout: fetchTimeout,
		concurrency:  DefaultFetchConcurrency,
		now:          time.Now,
	}
}

// GetSeries returns the series for symbol over tf, from cache when fresh.
func (s *QuoteService) GetSeries(ctx context.Context, symbol string, tf models.Timeframe) (*models.QuoteSeries, error) {
	symbol = models.NormalizeSymbol(symbol)
	if s.cache != nil {
		if qs, ok := s.cache.GetSeries(symbol, tf); ok {
			log.Debugf("GetSeries: cache hit for %s/%s", symbol, tf)
			return qs, nil
		}
	}
	return s.Fetch(ctx, symbol, tf)
}

// PruneCache drops expired cache entries and returns how many went.
func (s *QuoteService) PruneCache() int {
	if s.cache == nil {
		return 0
	}
	removed := s.cache.Prune()
	if removed > 0 {
		log.Debugf("PruneCache: removed %d expired entries, %d left", removed, s.cache.Len())
	}
	return removed
}

// Fetch always goes upstream, then refreshes the cache. Concurrent calls for
// the same symbol and timeframe share one upstream request.
func (s *QuoteService) Fetch(ctx context.Context, symbol string, tf models.Timeframe) (*models.QuoteSeries, error) {
	symbol = models.NormalizeSymbol(symbol)
	key := symbol + "|" + string(tf)

	ch := s.group.DoChan(key, func() (interface{}, error) {
		// Detached from the first caller so its cancellation does not fail the
		// others waiting on the same key; the fetch timeout still bounds it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		raw, err := s.fetcher.GetChart(fetchCtx, symbol, tf, s.now())
		if err != nil {
			return nil, err
		}
		qs, err := series.Normalize(raw)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.SetSeries(symbol, tf, qs)
		}
		return qs, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch %s: %w", symbol, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.QuoteSeries), nil
	}
}

// SymbolFailure records why one symbol is missing from a batch.
type SymbolFailure struct {
	Symbol string
	Err    error
}

// BatchStatus classifies a batch so callers can tell a partial failure from
// a total outage.
type BatchStatus string

const (
	BatchOK      BatchStatus = "ok"
	BatchPartial BatchStatus = "partial"
	BatchOutage  BatchStatus = "outage"
	BatchEmpty   BatchStatus = "empty" // nothing was requested
)

// BatchResult is the outcome of FetchAll.
type BatchResult struct {
	Requested []string
	Series    map[string]*models.QuoteSeries
	Failures  []SymbolFailure // in Requested order
}

// Status classifies the batch.
func (b *BatchResult) Status() BatchStatus {
	switch {
	case len(b.Requested) == 0:
		return BatchEmpty
	case len(b.Failures) == 0:
		return BatchOK
	case len(b.Series) == 0:
		return BatchOutage
	default:
		return BatchPartial
	}
}

// Succeeded lists the symbols with data, in request order.
func (b *BatchResult) Succeeded() []string {
	out := make([]string, 0, len(b.Series))
	for _, sym := range b.Requested {
		if _, ok := b.Series[sym]; ok {
			out = append(out, sym)
		}
	}
	return out
}

// FailedSymbols lists the symbols without data, in request order.
func (b *BatchResult) FailedSymbols() []string {
	out := make([]string, 0, len(b.Failures))
	for _, f := range b.Failures {
		out = append(out, f.Symbol)
	}
	return out
}

// FetchAll fetches every symbol concurrently. A failing symbol never cancels
// the others; it is logged, added as a warning on ctx and reported in
// Failures.
func (s *QuoteService) FetchAll(ctx context.Context, symbols []string, tf models.Timeframe) *BatchResult {
	defer TrackTime("FetchAll", time.Now())

	results := make([]*models.QuoteSeries, len(symbols))
	errs := make([]error, len(symbols))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, sym := range symbols {
		g.Go(func() error {
			results[i], errs[i] = s.Fetch(ctx, sym, tf)
			return nil
		})
	}
	_ = g.Wait()

	batch := &BatchResult{
		Requested: symbols,
		Series:    make(map[string]*models.QuoteSeries, len(symbols)),
	}
	for i, sym := range symbols {
		if errs[i] != nil {
			log.Warnf("Error fetching %s: %v", sym, errs[i])
			batch.Failures = append(batch.Failures, SymbolFailure{Symbol: sym, Err: errs[i]})
			Warnf(ctx, models.WarnSymbolFetchFailed, "%s: %s", sym, failureReason(errs[i]))
			continue
		}
		batch.Series[sym] = results[i]
	}

	log.Infof("Fetched %d/%d symbols (%s)", len(batch.Series), len(symbols), batch.Status())
	return batch
}

// failureReason is the short, user-facing form of a fetch error.
func failureReason(err error) string {
	var upErr *models.UpstreamError
	switch {
	case errors.As(err, &upErr):
		return upErr.Cause
	case errors.Is(err, models.ErrEmptySeries):
		return models.ErrEmptySeries.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	default:
		return err.Error()
	}
}
