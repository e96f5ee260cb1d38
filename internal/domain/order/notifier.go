package order

import "context"

// Notifier pushes order lifecycle events to the shop operators.
// Implementations are best-effort; delivery failures never block the
// order flow.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o *Order) error
	NotifyOrderPaid(ctx context.Context, o *Order) error
	NotifyOrderCancelled(ctx context.Context, o *Order) error
}
