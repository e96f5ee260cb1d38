package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*Order, error)
	FindByTelegramUser(ctx context.Context, telegramUserID int64, filter shared.Filter) ([]Order, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, int64, error)
	// FindStalePending returns pending orders created before the cutoff,
	// oldest first, limited to the given batch size.
	FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}
