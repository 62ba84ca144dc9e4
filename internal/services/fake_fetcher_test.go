package services

import (
	"context"
	"sync"
	"time"

	"github.com/epeers/stockalert/internal/cache"
	"github.com/epeers/stockalert/internal/models"
)

var testNow = time.Date(2024, 7, 18, 20, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// fakeFetcher serves canned closes per symbol, one per day ending on now's day.
type fakeFetcher struct {
	mu      sync.Mutex
	closes  map[string][]float64
	errs    map[string]error
	calls   map[string]int
	delay   time.Duration
	gates   map[string]chan struct{}
	entered chan string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		closes:  map[string][]float64{},
		errs:    map[string]error{},
		calls:   map[string]int{},
		gates:   map[string]chan struct{}{},
		entered: make(chan string, 16),
	}
}

func (f *fakeFetcher) set(symbol string, closes ...float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes[symbol] = closes
	delete(f.errs, symbol)
}

func (f *fakeFetcher) fail(symbol string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[symbol] = err
}

// hold makes fetches of symbol block until the returned channel is closed.
func (f *fakeFetcher) hold(symbol string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gates[symbol] = gate
	return gate
}

func (f *fakeFetcher) callCount(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[symbol]
}

func (f *fakeFetcher) GetChart(ctx context.Context, symbol string, tf models.Timeframe, now time.Time) (*models.RawSeries, error) {
	f.mu.Lock()
	f.calls[symbol]++
	closes, ok := f.closes[symbol]
	err := f.errs[symbol]
	gate := f.gates[symbol]
	delay := f.delay
	f.mu.Unlock()

	if gate != nil {
		f.entered <- symbol
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, models.NewUpstreamError(symbol, 0, "request failed", ctx.Err())
		}
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, models.NewUpstreamError(symbol, 0, "request failed", ctx.Err())
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewUpstreamError(symbol, 404, "HTTP error! status: 404", nil)
	}
	return rawSeriesOf(symbol, now, closes), nil
}

func rawSeriesOf(symbol string, now time.Time, closes []float64) *models.RawSeries {
	last := models.NewDay(now)
	raw := &models.RawSeries{Symbol: symbol, Name: symbol + " Corp"}
	for i, c := range closes {
		day := last.AddDate(0, 0, i-len(closes)+1)
		raw.Timestamps = append(raw.Timestamps, day.Unix()+14*3600)
		c := c
		raw.Closes = append(raw.Closes, &c)
		vol := int64(1000 * (i + 1))
		raw.Volumes = append(raw.Volumes, &vol)
	}
	return raw
}

// closesEndingAt is 29 days at 100 followed by last.
func closesEndingAt(last float64) []float64 {
	out := make([]float64, 0, 30)
	for i := 0; i < 29; i++ {
		out = append(out, 100)
	}
	return append(out, last)
}

func newTestQuoteService(f *fakeFetcher, fetchTimeout time.Duration) *QuoteService {
	svc := NewQuoteService(f, cache.NewMemoryCache(time.Minute), fetchTimeout)
	svc.now = fixedNow
	return svc
}
