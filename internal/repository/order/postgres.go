package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"alumnimart/internal/domain"
	"alumnimart/internal/pricing"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, user_id::text, customer_name, customer_email, COALESCE(customer_phone, ''), COALESCE(customer_address, ''), subtotal, tax, shipping, total, status, payment_status, COALESCE(payment_reference, ''), created_at, updated_at`

func (r *postgresRepo) CreateFromCart(ctx context.Context, in CreateFromCartInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the cart rows so a concurrent clear/update cannot slip between the
	// read and the snapshot inserts. Prices and titles are captured here and
	// never re-read.
	const linesQ = `
SELECT ci.product_id::text, ci.quantity, p.title, p.price
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.added_at ASC
FOR UPDATE OF ci
`
	rows, err := tx.Query(ctx, linesQ, in.UserID)
	if err != nil {
		return nil, err
	}

	var items []domain.OrderItem
	subtotal := decimal.Zero
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Title, &item.UnitPrice); err != nil {
			rows.Close()
			return nil, err
		}
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(item.Subtotal)
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	quote := pricing.QuoteFor(subtotal)

	const orderQ = `
INSERT INTO orders (user_id, customer_name, customer_email, customer_phone, customer_address, subtotal, tax, shipping, total)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
RETURNING id::text, status, payment_status, created_at, updated_at
`
	out := domain.Order{
		UserID:          in.UserID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
	}
	if err := tx.QueryRow(ctx, orderQ,
		in.UserID, in.CustomerName, in.CustomerEmail, in.CustomerPhone, in.CustomerAddress,
		quote.Subtotal, quote.Tax, quote.Shipping, quote.Total,
	).Scan(&out.ID, &out.Status, &out.PaymentStatus, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}

	const itemQ = `
INSERT INTO order_items (order_id, product_id, title, unit_price, quantity, subtotal)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`
	for i := range items {
		items[i].OrderID = out.ID
		if err := tx.QueryRow(ctx, itemQ,
			out.ID, items[i].ProductID, items[i].Title, items[i].UnitPrice, items[i].Quantity, items[i].Subtotal,
		).Scan(&items[i].ID); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}
	out.Items = items

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order id=%s user=%s items=%d total=%s", out.ID, in.UserID, len(items), out.Total)
	return &out, nil
}

func (r *postgresRepo) SetPaymentReference(ctx context.Context, orderID, reference string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET payment_reference = $1, updated_at = now() WHERE id = $2`, reference, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetForUser(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	q := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`, orderColumns)
	return r.fetchOrder(ctx, q, orderID, userID)
}

func (r *postgresRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	q := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	return r.fetchOrder(ctx, q, orderID)
}

func (r *postgresRepo) GetByReference(ctx context.Context, reference string) (*domain.Order, error) {
	q := fmt.Sprintf(`SELECT %s FROM orders WHERE payment_reference = $1`, orderColumns)
	return r.fetchOrder(ctx, q, reference)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, orderColumns)
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) MarkPaid(ctx context.Context, reference string) (*domain.Order, bool, error) {
	// Guarded transition: a replayed verification matches zero rows and the
	// order keeps its already-applied state.
	const q = `
UPDATE orders
SET payment_status = 'paid', status = 'processing', updated_at = now()
WHERE payment_reference = $1 AND payment_status = 'pending'
`
	cmd, err := r.pool.Exec(ctx, q, reference)
	if err != nil {
		return nil, false, err
	}
	applied := cmd.RowsAffected() > 0

	out, err := r.GetByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}
	return out, applied, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID, from, to string) (bool, error) {
	const q = `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2 AND status = $3
`
	cmd, err := r.pool.Exec(ctx, q, to, orderID, from)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, args ...interface{}) (*domain.Order, error) {
	var o domain.Order
	row := r.pool.QueryRow(ctx, q, args...)
	if err := scanOrder(row, &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQ = `
SELECT id::text, order_id::text, product_id::text, title, unit_price, quantity, subtotal
FROM order_items
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, itemsQ, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Title, &item.UnitPrice, &item.Quantity, &item.Subtotal); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(
		&o.ID,
		&o.UserID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&o.Subtotal,
		&o.Tax,
		&o.Shipping,
		&o.Total,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentReference,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}
