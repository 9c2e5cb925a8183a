package storage

import (
	"context"
	"fmt"
	"time"

	"tableside/internal/domain"
)

// CreateOrder persists the order, its lines and (optionally) the customer
// session as one transaction. The tables row is locked first so two racing
// submissions for the same table serialize on the occupancy check instead of
// double-booking it.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order, session *domain.CustomerSession) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var tableID int
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM tables WHERE id = $1 FOR UPDATE", order.TableID,
	).Scan(&tableID)
	if err != nil {
		return notFound("table", order.TableID, err)
	}

	var occupied bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE table_id = $1 AND status NOT IN ('completed', 'cancelled')
		)`, order.TableID,
	).Scan(&occupied)
	if err != nil {
		return err
	}
	if occupied {
		return fmt.Errorf("table %d: %w", order.TableID, domain.ErrTableOccupied)
	}

	if session != nil {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO customer_sessions (session_token, table_id, customer_name, customer_phone, is_active, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			session.Token, session.TableID, session.CustomerName, session.CustomerPhone,
			session.Active, session.ExpiresAt,
		).Scan(&session.ID, &session.CreatedAt)
		if err != nil {
			return err
		}
		order.SessionID = &session.ID
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (table_id, customer_session_id, customer_name, customer_phone, status, total_cents, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		order.TableID, order.SessionID, order.CustomerName, order.CustomerPhone,
		string(order.Status), int64(order.TotalAmount), order.Notes,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		line := &order.Items[i]
		line.OrderID = order.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_lines (order_id, food_id, quantity, price_cents)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			line.OrderID, line.FoodID, line.Quantity, int64(line.Price),
		).Scan(&line.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

const orderColumns = `
	o.id, o.table_id, t.name, o.customer_session_id, o.customer_name, o.customer_phone,
	o.status, o.chef_id, o.preparation_time, o.total_cents, o.notes, o.created_at, i.id`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	var total int64
	var status string
	err := row.Scan(
		&o.ID, &o.TableID, &o.TableName, &o.SessionID, &o.CustomerName, &o.CustomerPhone,
		&status, &o.ChefID, &o.PreparationTime, &total, &o.Notes, &o.CreatedAt, &o.InvoiceID,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.TotalAmount = domain.Cents(total)
	return &o, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN tables t ON o.table_id = t.id
		LEFT JOIN invoices i ON i.order_id = o.id
		WHERE o.id = $1`, id)

	order, err := scanOrder(row)
	if err != nil {
		return nil, notFound("order", id, err)
	}

	order.Items, err = r.orderLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	return r.queryOrders(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN tables t ON o.table_id = t.id
		LEFT JOIN invoices i ON i.order_id = o.id
		ORDER BY o.created_at DESC, o.id DESC`)
}

// ListOrdersForTableSince backs the customer dashboard: every order on the
// table placed at or after the session started, newest first.
func (r *PostgresRepository) ListOrdersForTableSince(ctx context.Context, tableID int, since time.Time) ([]domain.Order, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	return r.queryOrders(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		JOIN tables t ON o.table_id = t.id
		LEFT JOIN invoices i ON i.order_id = o.id
		WHERE o.table_id = $1 AND o.created_at >= $2
		ORDER BY o.created_at DESC, o.id DESC`, tableID, since)
}

func (r *PostgresRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = r.orderLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *PostgresRepository) orderLines(ctx context.Context, orderID int) ([]domain.OrderLine, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT l.id, l.order_id, l.food_id, f.name, l.quantity, l.price_cents
		FROM order_lines l
		JOIN foods f ON l.food_id = f.id
		WHERE l.order_id = $1
		ORDER BY l.id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		var price int64
		if err := rows.Scan(&line.ID, &line.OrderID, &line.FoodID, &line.FoodName, &line.Quantity, &price); err != nil {
			return nil, err
		}
		line.Price = domain.Cents(price)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// UpdateOrderStatus never touches total_cents; the order total is frozen at
// creation.
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus, preparationTime, chefID *int) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
			preparation_time = COALESCE($2, preparation_time),
			chef_id = COALESCE($3, chef_id)
		WHERE id = $4`,
		string(status), preparationTime, chefID, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id int) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_lines WHERE order_id = $1", id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}

	return tx.Commit()
}
