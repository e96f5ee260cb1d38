package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
)

// NotTrackedError reports a sale attempted against an entity with no
// inventory configuration. Untracked items cannot be sold; operators
// must configure stock first. Not retryable.
type NotTrackedError struct {
	Kind       catalog.EntityKind
	EntityID   uuid.UUID
	EntityName string
}

// Error implements the error interface
func (e *NotTrackedError) Error() string {
	return fmt.Sprintf("stock tracking is not configured for %s %q", e.Kind, e.EntityName)
}

// InsufficientStockError reports a sale that would drive a size below
// zero. Carries everything the checkout UI needs for an actionable
// message. Retryable only after stock changes.
type InsufficientStockError struct {
	Kind       catalog.EntityKind
	EntityID   uuid.UUID
	EntityName string
	Size       string
	Available  int
	Requested  int
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("size %q of %s %q is out of stock (available: %d, requested: %d)",
		e.Size, e.Kind, e.EntityName, e.Available, e.Requested)
}

// LockTimeoutError reports that the entity row lock could not be
// acquired within the transaction's patience. Retryable by the caller.
type LockTimeoutError struct {
	Kind     catalog.EntityKind
	EntityID uuid.UUID
}

// Error implements the error interface
func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for stock lock on %s %s", e.Kind, e.EntityID)
}

// EntityNotFoundError reports a line item referencing a sellable entity
// that does not exist, usually stale client data. Not retryable.
type EntityNotFoundError struct {
	Kind     catalog.EntityKind
	EntityID uuid.UUID
}

// Error implements the error interface
func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.EntityID)
}
