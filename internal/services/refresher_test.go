package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/epeers/stockalert/internal/cache"
	"github.com/epeers/stockalert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRefresher(t *testing.T, f *fakeFetcher, open bool) *Refresher {
	t.Helper()
	r := NewRefresher(newTestSession(t, f, nil), "", time.Second)
	r.now = fixedNow
	r.gate = func(time.Time) bool { return open }
	return r
}

func TestRefresher_TickOutsideMarketHoursDoesNothing(t *testing.T) {
	f := defaultFetcher()
	r := newTestRefresher(t, f, false)

	r.tick()
	assert.Equal(t, 0, f.callCount("VOO"))
	assert.Empty(t, r.session.Snapshot().Series)
}

func TestRefresher_TickPrunesExpiredCache(t *testing.T) {
	f := defaultFetcher()
	r := newTestRefresher(t, f, false)
	quotes := r.session.quotes
	quotes.cache = cache.NewMemoryCache(time.Nanosecond)

	_, err := quotes.Fetch(context.Background(), "VOO", models.Timeframe3M)
	require.NoError(t, err)
	require.Equal(t, 1, quotes.cache.Len())
	time.Sleep(time.Millisecond)

	r.tick()
	assert.Equal(t, 0, quotes.cache.Len(), "expired entries are pruned even when the market is closed")
	assert.Equal(t, 1, f.callCount("VOO"), "closed market still skips the refresh")
}

func TestRefresher_TickDuringMarketHoursRefreshes(t *testing.T) {
	f := defaultFetcher()
	r := newTestRefresher(t, f, true)

	r.tick()
	assert.Equal(t, 1, f.callCount("VOO"))
	assert.Len(t, r.session.Snapshot().Series, 8)
}

func TestRefresher_RunNowRejectsOverlap(t *testing.T) {
	f := defaultFetcher()
	gate := f.hold("VOO")
	r := newTestRefresher(t, f, true)

	first := make(chan error)
	go func() {
		_, err := r.RunNow(context.Background())
		first <- err
	}()
	require.Equal(t, "VOO", <-f.entered)

	_, err := r.RunNow(context.Background())
	assert.True(t, errors.Is(err, ErrRefreshInProgress))

	// a scheduled tick during the run is skipped as well
	r.tick()

	close(gate)
	require.NoError(t, <-first)
	assert.Equal(t, 1, f.callCount("QQQ"))

	batch, err := r.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BatchOK, batch.Status())
}

func TestRefresher_StartRejectsBadSchedule(t *testing.T) {
	r := NewRefresher(newTestSession(t, newFakeFetcher(), nil), "every five minutes", time.Second)
	assert.Error(t, r.Start())
}

func TestRefresher_StartStop(t *testing.T) {
	r := NewRefresher(newTestSession(t, newFakeFetcher(), nil), DefaultRefreshSchedule, time.Second)
	require.NoError(t, r.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
}
