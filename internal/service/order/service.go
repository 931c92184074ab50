package order

import (
	"context"
	"errors"
	"io"
	"log"
	"net/mail"
	"strings"

	"alumnimart/internal/domain"
	"alumnimart/internal/paystack"
	orderrepo "alumnimart/internal/repository/order"
)

// ErrPaymentUnresolved is returned when the gateway reports a state that is
// neither success nor failure (e.g. abandoned, still pending). The order is
// left untouched so the verification can be retried.
var ErrPaymentUnresolved = errors.New("payment not resolved yet")

// Service converts carts into durable orders and coordinates payment.
type Service struct {
	orders      orderRepo
	cart        cartRepo
	gateway     gateway
	callbackURL string
	logger      *log.Logger
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, in orderrepo.CreateFromCartInput) (*domain.Order, error)
	SetPaymentReference(ctx context.Context, orderID, reference string) error
	GetForUser(ctx context.Context, userID, orderID string) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	MarkPaid(ctx context.Context, reference string) (*domain.Order, bool, error)
	UpdateStatus(ctx context.Context, orderID, from, to string) (bool, error)
}

type cartRepo interface {
	Clear(ctx context.Context, userID string) error
}

type gateway interface {
	Initialize(ctx context.Context, in paystack.InitializeInput) (*paystack.Authorization, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error)
}

func New(orders orderRepo, cart cartRepo, gw gateway, callbackURL string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:      orders,
		cart:        cart,
		gateway:     gw,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

// CheckoutInput is the customer snapshot captured on the order.
type CheckoutInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutResult reports the committed order and where to send the buyer.
type CheckoutResult struct {
	Order            *domain.Order `json:"order"`
	Reference        string        `json:"reference"`
	AuthorizationURL string        `json:"authorizationUrl"`
}

// Checkout snapshots the cart into an order and initializes hosted payment.
// The cart is left intact: it is cleared only once the payment verifies, so
// a failed initialization or an abandoned checkout can simply be retried
// (each retry creates its own pending order).
func (s *Service) Checkout(ctx context.Context, userID string, in CheckoutInput) (*CheckoutResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("customer name is required")
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.Validationf("customer email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Validationf("customer email is not valid")
	}

	order, err := s.orders.CreateFromCart(ctx, orderrepo.CreateFromCartInput{
		UserID:          userID,
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   strings.TrimSpace(in.Phone),
		CustomerAddress: strings.TrimSpace(in.Address),
	})
	if err != nil {
		return nil, err
	}

	reference := paystack.GenerateReference("ALM")
	if err := s.orders.SetPaymentReference(ctx, order.ID, reference); err != nil {
		return nil, err
	}
	order.PaymentReference = reference

	auth, err := s.gateway.Initialize(ctx, paystack.InitializeInput{
		Email:       email,
		Amount:      order.Total,
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Metadata:    paystack.Metadata{OrderID: order.ID},
	})
	if err != nil {
		// The order stays pending; the buyer retries checkout against the
		// still-intact cart.
		s.logger.Printf("order service: initialize payment order=%s ref=%s error=%v", order.ID, reference, err)
		return nil, err
	}

	return &CheckoutResult{
		Order:            order,
		Reference:        reference,
		AuthorizationURL: auth.AuthorizationURL,
	}, nil
}

// VerifyResult reports the outcome of a payment verification.
type VerifyResult struct {
	Order *domain.Order
	Paid  bool
	// Applied is false when this verification was a replay of one already
	// processed; replays never re-run side effects.
	Applied bool
}

// VerifyPayment resolves a gateway callback. A verified success is the only
// event that mutates the order; failed, ambiguous and transport-error
// outcomes all leave it untouched so the buyer can retry without creating a
// duplicate order.
func (s *Service) VerifyPayment(ctx context.Context, reference string) (*VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domain.Validationf("reference is required")
	}

	remote, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		s.logger.Printf("order service: verify ref=%s error=%v", reference, err)
		return nil, err
	}

	switch remote.Status {
	case paystack.StatusSuccess:
		order, applied, err := s.orders.MarkPaid(ctx, reference)
		if err != nil {
			return nil, err
		}
		if applied {
			// Deferred cart clearing: only the first successful verification
			// empties the cart. An error here must not fail the verification,
			// the payment is already recorded.
			if err := s.cart.Clear(ctx, order.UserID); err != nil {
				s.logger.Printf("order service: clear cart user=%s after paid order=%s error=%v", order.UserID, order.ID, err)
			}
		}
		return &VerifyResult{Order: order, Paid: true, Applied: applied}, nil
	case paystack.StatusFailed:
		// A failed attempt does not consume the order: it stays pending so the
		// buyer can re-initialize payment against it instead of checking out
		// again.
		order, err := s.orders.GetByReference(ctx, reference)
		if err != nil {
			return nil, err
		}
		return &VerifyResult{Order: order, Paid: false, Applied: false}, nil
	default:
		s.logger.Printf("order service: verify ref=%s unresolved status=%q", reference, remote.Status)
		return nil, ErrPaymentUnresolved
	}
}

// Get returns an order scoped to its owner; guessing foreign ids yields
// ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.orders.GetForUser(ctx, userID, orderID)
}

// History lists the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus moves an order along the fulfilment state machine. The caller
// is expected to have checked admin rights.
func (s *Service) UpdateStatus(ctx context.Context, orderID, to string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(order.Status, to) {
		return nil, domain.Validationf("cannot move order from %s to %s", order.Status, to)
	}
	applied, err := s.orders.UpdateStatus(ctx, orderID, order.Status, to)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost the race with a concurrent transition.
		return nil, domain.ErrConflict
	}
	return s.orders.GetByID(ctx, orderID)
}
