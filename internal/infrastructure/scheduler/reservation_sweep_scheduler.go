package scheduler

import (
	"context"
	"sync"
	"time"

	apporder "github.com/kavara/backend/internal/application/order"
	"github.com/kavara/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ReservationSweepScheduler periodically cancels stale pending orders
// so their reserved stock returns to the shelf. Each sweep delegates to
// the reservation expiry service, which refunds through the regular
// settlement path.
type ReservationSweepScheduler struct {
	service   *apporder.ReservationExpiryService
	logger    *zap.Logger
	interval  time.Duration
	enabled   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// sweepTimeout bounds a single sweep run
const sweepTimeout = 5 * time.Minute

// NewReservationSweepScheduler creates a new ReservationSweepScheduler
func NewReservationSweepScheduler(
	service *apporder.ReservationExpiryService,
	cfg config.ReservationConfig,
	logger *zap.Logger,
) *ReservationSweepScheduler {
	return &ReservationSweepScheduler{
		service:  service,
		logger:   logger.Named("reservation-sweep"),
		interval: cfg.CheckInterval,
		enabled:  cfg.SweepEnabled,
	}
}

// Start starts the sweep loop. It is a no-op when the sweep is disabled
// or already running.
func (s *ReservationSweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.enabled {
		s.mu.Unlock()
		s.logger.Info("Reservation sweep is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Reservation sweep started", zap.Duration("interval", s.interval))
	return nil
}

// Stop gracefully stops the scheduler, waiting for an in-flight sweep
// to finish or the given context to expire.
func (s *ReservationSweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Reservation sweep stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Reservation sweep stop timed out")
		return ctx.Err()
	}
}

// run executes sweeps on the configured interval until cancelled
func (s *ReservationSweepScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Sweep loop stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one bounded pass of the expiry service
func (s *ReservationSweepScheduler) sweep(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	stats, err := s.service.ReleaseExpiredReservations(runCtx)
	if err != nil {
		s.logger.Error("Reservation sweep failed", zap.Error(err))
		return
	}
	if stats.TotalStale > 0 {
		s.logger.Info("Reservation sweep completed",
			zap.Int("total_stale", stats.TotalStale),
			zap.Int("cancelled", stats.Cancelled),
			zap.Int("failed", stats.Failed),
		)
	}
}
