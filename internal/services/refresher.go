package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/epeers/stockalert/internal/util"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// DefaultRefreshSchedule runs a refresh every five minutes.
const DefaultRefreshSchedule = "*/5 * * * *"

// ErrRefreshInProgress is returned by RunNow while another cycle is running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Refresher refreshes the session on a cron schedule during market hours.
// Scheduled and manual runs share one in-flight guard, so cycles never
// overlap.
type Refresher struct {
	session  *Session
	cron     *cron.Cron
	schedule string
	running  atomic.Bool
	gate     func(time.Time) bool
	now      func() time.Time
	timeout  time.Duration
}

// NewRefresher creates a Refresher; call Start to schedule it.
func NewRefresher(session *Session, schedule string, cycleTimeout time.Duration) *Refresher {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	logger := cron.PrintfLogger(log.StandardLogger())
	return &Refresher{
		session:  session,
		cron:     cron.New(cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		schedule: schedule,
		gate:     util.IsMarketHours,
		now:      time.Now,
		timeout:  cycleTimeout,
	}
}

// Start schedules the refresh job.
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, r.tick); err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}
	r.cron.Start()
	log.Infof("Refresher scheduled (%s, market hours only)", r.schedule)
	return nil
}

// Stop cancels future runs and waits for a running cycle to finish or ctx to
// expire.
func (r *Refresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		log.Info("Refresher stopped")
	case <-ctx.Done():
		log.Warn("Refresher stop timed out with a cycle still running")
	}
}

// RunNow runs one cycle immediately, regardless of market hours.
func (r *Refresher) RunNow(ctx context.Context) (*BatchResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}
	defer r.running.Store(false)
	return r.session.Refresh(ctx), nil
}

func (r *Refresher) tick() {
	r.session.quotes.PruneCache()

	now := r.now()
	if !r.gate(now) {
		log.Debugf("Refresher: market closed, next window opens %s", util.NextMarketOpen(now).Format(time.RFC3339))
		return
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if _, err := r.RunNow(ctx); err != nil {
		log.Infof("Refresher: skipping scheduled cycle: %v", err)
	}
}
