package repository

import (
	"database/sql"
	"fmt"

	"github.com/iothub/storefront/internal/order/domain"
)

// PostgresOrderRepository implements OrderRepository using database/sql
type PostgresOrderRepository struct {
	db *sql.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Migrate creates the orders tables if they do not exist
func (r *PostgresOrderRepository) Migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			total NUMERIC(12,2) NOT NULL,
			currency TEXT NOT NULL DEFAULT 'INR',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			product_type TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			quantity INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate orders schema: %w", err)
	}
	return nil
}

// Create inserts an order and its items in one transaction
func (r *PostgresOrderRepository) Create(order *domain.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO orders (reference, user_id, total, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, order.Reference, order.UserID, order.Total, order.Currency, order.Status).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(`
			INSERT INTO order_items (order_id, product_id, name, product_type, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Name, item.ProductType, item.Price, item.Quantity).
			Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// FindByID retrieves an order with its items
func (r *PostgresOrderRepository) FindByID(id uint) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.QueryRow(`
		SELECT id, reference, user_id, total, currency, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id).Scan(
		&order.ID, &order.Reference, &order.UserID, &order.Total,
		&order.Currency, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.loadItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindByReference retrieves an order by its public reference
func (r *PostgresOrderRepository) FindByReference(reference string) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.QueryRow(`
		SELECT id, reference, user_id, total, currency, status, created_at, updated_at
		FROM orders WHERE reference = $1
	`, reference).Scan(
		&order.ID, &order.Reference, &order.UserID, &order.Total,
		&order.Currency, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.loadItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindByUserID retrieves a user's orders, newest first
func (r *PostgresOrderRepository) FindByUserID(userID string, limit, offset int) ([]domain.Order, error) {
	return r.findMany(`
		SELECT id, reference, user_id, total, currency, status, created_at, updated_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

// FindAll retrieves orders with pagination, newest first
func (r *PostgresOrderRepository) FindAll(limit, offset int) ([]domain.Order, error) {
	return r.findMany(`
		SELECT id, reference, user_id, total, currency, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
}

func (r *PostgresOrderRepository) findMany(query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.Reference, &order.UserID, &order.Total,
			&order.Currency, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for i := range orders {
		if err := r.loadItems(&orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PostgresOrderRepository) loadItems(order *domain.Order) error {
	rows, err := r.db.Query(`
		SELECT id, order_id, product_id, name, product_type, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, order.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	order.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.ProductType, &item.Price, &item.Quantity,
		); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

// UpdateStatus sets an order's status
func (r *PostgresOrderRepository) UpdateStatus(id uint, status string) error {
	result, err := r.db.Exec(`
		UPDATE orders SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

// Count returns the total number of orders
func (r *PostgresOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
