package order

import (
	"context"
	"time"

	"github.com/kavara/backend/internal/domain/order"
	"go.uber.org/zap"
)

// ReservationExpiryService cancels pending orders whose payment never
// arrived. Stock is reserved at creation, so an abandoned checkout
// holds inventory until this sweep releases it through the normal
// cancellation path.
type ReservationExpiryService struct {
	orderRepo    order.Repository
	orderService *Service
	ttl          time.Duration
	batchSize    int
	logger       *zap.Logger
}

// NewReservationExpiryService creates a new ReservationExpiryService
func NewReservationExpiryService(
	orderRepo order.Repository,
	orderService *Service,
	ttl time.Duration,
	batchSize int,
	logger *zap.Logger,
) *ReservationExpiryService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ReservationExpiryService{
		orderRepo:    orderRepo,
		orderService: orderService,
		ttl:          ttl,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// ExpiryStats contains statistics about one sweep run
type ExpiryStats struct {
	TotalStale  int       `json:"total_stale"`
	Cancelled   int       `json:"cancelled"`
	Failed      int       `json:"failed"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ReleaseExpiredReservations cancels every pending order older than the
// configured TTL, releasing its reserved stock
func (s *ReservationExpiryService) ReleaseExpiredReservations(ctx context.Context) (*ExpiryStats, error) {
	stats := &ExpiryStats{ProcessedAt: time.Now()}
	cutoff := time.Now().Add(-s.ttl)

	stale, err := s.orderRepo.FindStalePending(ctx, cutoff, s.batchSize)
	if err != nil {
		s.logger.Error("Failed to find stale pending orders", zap.Error(err))
		return nil, err
	}

	stats.TotalStale = len(stale)
	if stats.TotalStale == 0 {
		s.logger.Debug("No stale pending orders found")
		return stats, nil
	}

	s.logger.Info("Found stale pending orders",
		zap.Int("count", stats.TotalStale),
		zap.Time("cutoff", cutoff))

	for i := range stale {
		o := &stale[i]
		if _, err := s.orderService.Cancel(ctx, o.GetID()); err != nil {
			s.logger.Error("Failed to cancel stale pending order",
				zap.String("order_id", o.GetID().String()),
				zap.String("order_number", o.OrderNumber),
				zap.Error(err))
			stats.Failed++
			continue
		}
		stats.Cancelled++
	}

	s.logger.Info("Completed reservation expiry sweep",
		zap.Int("total", stats.TotalStale),
		zap.Int("cancelled", stats.Cancelled),
		zap.Int("failed", stats.Failed))

	return stats, nil
}
