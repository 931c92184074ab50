package order

import (
	"context"

	"alumnimart/internal/domain"
)

// CreateFromCartInput carries the checkout customer snapshot.
type CreateFromCartInput struct {
	UserID          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
}

type Repository interface {
	// CreateFromCart snapshots the user's cart into an order plus items in a
	// single transaction, locking the cart rows while it reads them. The cart
	// itself is left intact; it is cleared only on verified payment. Returns
	// domain.ErrEmptyCart when there is nothing to order.
	CreateFromCart(ctx context.Context, in CreateFromCartInput) (*domain.Order, error)
	SetPaymentReference(ctx context.Context, orderID, reference string) error
	// GetForUser is scoped to the owner; foreign orders yield ErrNotFound.
	GetForUser(ctx context.Context, userID, orderID string) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// MarkPaid applies payment_status=paid and status=processing iff the
	// payment is still pending. The bool reports whether the transition was
	// applied now (false on replay). A verified success is the only event
	// that moves payment state; failed and ambiguous verifications leave the
	// order pending so the buyer can retry against the same order.
	MarkPaid(ctx context.Context, reference string) (*domain.Order, bool, error)
	// UpdateStatus moves the order from one fulfilment status to another; the
	// bool reports whether the guarded update matched.
	UpdateStatus(ctx context.Context, orderID, from, to string) (bool, error)
}
