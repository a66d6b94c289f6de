package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/domain/order"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresOrderStore implements order.Store on PostgreSQL. Order writes and
// their stock mutations share one transaction, and the stock check is a
// conditional UPDATE so two concurrent checkouts can never both take the
// last unit.
type PostgresOrderStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresOrderStore(db *sql.DB, logger *zap.Logger) *PostgresOrderStore {
	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(zap.String("component", "order_store")),
	}
}

// Create persists the order and decrements stock for every line in a single
// transaction. A line whose product has too little stock aborts the whole
// transaction with an InsufficientStockError.
func (s *PostgresOrderStore) Create(ctx context.Context, o *order.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback()

	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products SET
				stock = stock - $2,
				sold = sold + $2,
				status = CASE WHEN stock - $2 <= 0 AND status = 'active' THEN 'sold_out' ELSE status END,
				updated_at = $3
			WHERE id = $1 AND stock >= $2
		`, item.ProductID, item.Quantity, o.CreatedAt)
		if err != nil {
			return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return s.insufficientStock(ctx, tx, item)
		}
	}

	address, _ := json.Marshal(o.ShippingAddress)
	history, _ := json.Marshal(o.StatusHistory)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, buyer_id, total_amount, currency, status,
			payment_method, payment_status, shipping_address, status_history,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, o.ID, o.BuyerID, o.TotalAmount, o.Currency, o.Status,
		o.PaymentMethod, o.PaymentStatus, address, history,
		o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, artisan_id, title, price, quantity, subtotal, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, o.ID, item.ProductID, item.ArtisanID, item.Title, item.Price, item.Quantity, item.Subtotal, item.Image)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// insufficientStock resolves availability for the error message. The product
// may also simply not exist anymore.
func (s *PostgresOrderStore) insufficientStock(ctx context.Context, tx *sql.Tx, item order.Item) error {
	var (
		title string
		stock int
	)
	err := tx.QueryRowContext(ctx,
		`SELECT title, stock FROM products WHERE id = $1`, item.ProductID).
		Scan(&title, &stock)
	if err == sql.ErrNoRows {
		return fmt.Errorf("product %s: %w", item.ProductID, catalog.ErrProductNotFound)
	}
	if err != nil {
		return fmt.Errorf("read stock for %s: %w", item.ProductID, err)
	}
	return &order.InsufficientStockError{
		ProductID: item.ProductID,
		Title:     title,
		Requested: item.Quantity,
		Available: stock,
	}
}

func (s *PostgresOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.scanOrder(s.db.QueryRowContext(ctx, `
		SELECT id, buyer_id, total_amount, currency, status, payment_method,
			payment_status, shipping_address, status_history,
			created_at, updated_at, cancelled_at
		FROM orders WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := s.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// UpdateStatus persists a status transition and its history entry.
func (s *PostgresOrderStore) UpdateStatus(ctx context.Context, o *order.Order) error {
	history, _ := json.Marshal(o.StatusHistory)
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, payment_status = $3, status_history = $4, updated_at = $5
		WHERE id = $1
	`, o.ID, o.Status, o.PaymentStatus, history, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Cancel marks the order cancelled and restores stock for every line in the
// same transaction. Lines whose product has since been removed are skipped.
func (s *PostgresOrderStore) Cancel(ctx context.Context, o *order.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback()

	history, _ := json.Marshal(o.StatusHistory)
	res, err := tx.ExecContext(ctx, `
		UPDATE orders SET status = $2, status_history = $3, updated_at = $4, cancelled_at = $5
		WHERE id = $1
	`, o.ID, o.Status, history, o.UpdatedAt, o.CancelledAt)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return order.ErrOrderNotFound
	}

	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products SET
				stock = stock + $2,
				sold = GREATEST(sold - $2, 0),
				status = CASE WHEN status = 'sold_out' THEN 'active' ELSE status END,
				updated_at = $3
			WHERE id = $1
		`, item.ProductID, item.Quantity, o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore stock for %s: %w", item.ProductID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			s.logger.Warn("product missing during restock",
				zap.String("order_id", o.ID),
				zap.String("product_id", item.ProductID))
		}
	}

	return tx.Commit()
}

func (s *PostgresOrderStore) ListByBuyer(ctx context.Context, buyerID string, status order.Status, limit, offset int) ([]*order.Order, int, error) {
	return s.list(ctx, `buyer_id = $1`, buyerID, status, limit, offset)
}

func (s *PostgresOrderStore) ListByArtisan(ctx context.Context, artisanID string, status order.Status, limit, offset int) ([]*order.Order, int, error) {
	return s.list(ctx,
		`EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.artisan_id = $1)`,
		artisanID, status, limit, offset)
}

func (s *PostgresOrderStore) list(ctx context.Context, ownerCond, ownerID string, status order.Status, limit, offset int) ([]*order.Order, int, error) {
	where := "WHERE " + ownerCond
	args := []any{ownerID}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, buyer_id, total_amount, currency, status, payment_method,
			payment_status, shipping_address, status_history,
			created_at, updated_at, cancelled_at
		FROM orders %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders []*order.Order
		ids    []string
	)
	for rows.Next() {
		o, err := s.scanOrder(rows)
		if err != nil {
			s.logger.Error("failed to scan order row", zap.Error(err))
			continue
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	items, err := s.loadItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}
	return orders, total, nil
}

func (s *PostgresOrderStore) scanOrder(row rowScanner) (*order.Order, error) {
	var (
		o                order.Order
		address, history []byte
		cancelledAt      sql.NullTime
	)
	err := row.Scan(&o.ID, &o.BuyerID, &o.TotalAmount, &o.Currency, &o.Status,
		&o.PaymentMethod, &o.PaymentStatus, &address, &history,
		&o.CreatedAt, &o.UpdatedAt, &cancelledAt)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(address, &o.ShippingAddress)
	json.Unmarshal(history, &o.StatusHistory)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		o.CancelledAt = &t
	}
	return &o, nil
}

func (s *PostgresOrderStore) loadItems(ctx context.Context, orderIDs []string) (map[string][]order.Item, error) {
	items := make(map[string][]order.Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, product_id, artisan_id, title, price, quantity, subtotal, image
		FROM order_items WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			item    order.Item
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.ArtisanID,
			&item.Title, &item.Price, &item.Quantity, &item.Subtotal, &item.Image); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], item)
	}
	return items, rows.Err()
}
