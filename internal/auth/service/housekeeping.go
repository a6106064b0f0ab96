package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/kroyahq/kroya/internal/auth/store"
)

// DefaultLedgerRetention is how long dead (revoked or expired) ledger rows
// are kept before housekeeping purges them.
const DefaultLedgerRetention = 7 * 24 * time.Hour

// HousekeepingService periodically cleans up expired database records
// to prevent unbounded growth of otp_codes and issued_tokens.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: DefaultLedgerRetention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletion of stale records.
// Each deletion is independent - failures in one won't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.Logger.Info("starting housekeeping cleanup")

	if err := s.Store.OtpCodes().DeleteExpiredOtps(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired otp codes", "error", err)
	} else {
		s.Logger.Debug("deleted expired otp codes")
	}

	cutoff := now.Add(-s.Retention)
	if err := s.Store.IssuedTokens().DeleteDeadIssuedTokens(ctx, cutoff); err != nil {
		s.Logger.Error("failed to delete dead issued tokens", "error", err)
	} else {
		s.Logger.Debug("deleted dead issued tokens", "cutoff", cutoff)
	}

	s.Logger.Info("housekeeping cleanup completed")
}
