package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tableside/internal/domain"

	"github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// opCtx bounds every storage call so a stuck database surfaces as an error
// instead of a hung request.
func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

func notFound(entity string, id int, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return err
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tables (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS foods (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price_cents BIGINT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS customer_sessions (
			id SERIAL PRIMARY KEY,
			session_token TEXT NOT NULL UNIQUE,
			table_id INTEGER NOT NULL REFERENCES tables(id),
			customer_name TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			table_id INTEGER NOT NULL REFERENCES tables(id),
			customer_session_id INTEGER REFERENCES customer_sessions(id),
			customer_name TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			chef_id INTEGER,
			preparation_time INTEGER,
			total_cents BIGINT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			food_id INTEGER NOT NULL REFERENCES foods(id),
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			price_cents BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL UNIQUE REFERENCES orders(id),
			table_id INTEGER NOT NULL,
			invoice_number TEXT NOT NULL UNIQUE,
			subtotal_cents BIGINT NOT NULL,
			tax_cents BIGINT NOT NULL,
			discount_cents BIGINT NOT NULL DEFAULT 0,
			total_cents BIGINT NOT NULL,
			payment_status TEXT NOT NULL DEFAULT 'unpaid',
			payment_method TEXT NOT NULL DEFAULT '',
			preparation_time INTEGER NOT NULL DEFAULT 0,
			issued_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_table_created ON orders (table_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines (order_id)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	return r.DB.QueryRowContext(ctx,
		"INSERT INTO tables (name) VALUES ($1) RETURNING id, created_at",
		table.Name,
	).Scan(&table.ID, &table.CreatedAt)
}

func (r *PostgresRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at,
			EXISTS (
				SELECT 1 FROM orders o
				WHERE o.table_id = t.id AND o.status NOT IN ('completed', 'cancelled')
			) AS occupied
		FROM tables t
		ORDER BY t.name ASC, t.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.Occupied); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int) (*domain.Table, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var t domain.Table
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM tables WHERE id = $1", id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		return nil, notFound("table", id, err)
	}
	return &t, nil
}

func (r *PostgresRepository) RenameTable(ctx context.Context, id int, name string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, "UPDATE tables SET name = $1 WHERE id = $2", name, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepository) DeleteTable(ctx context.Context, id int) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, "DELETE FROM tables WHERE id = $1", id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepository) GetTableQRCode(ctx context.Context, id int) ([]byte, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var qr []byte
	err := r.DB.QueryRowContext(ctx, "SELECT qr_code FROM tables WHERE id = $1", id).Scan(&qr)
	if err != nil {
		return nil, notFound("table", id, err)
	}
	return qr, nil
}

func (r *PostgresRepository) SaveTableQRCode(ctx context.Context, id int, qr []byte) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, "UPDATE tables SET qr_code = $1 WHERE id = $2", qr, id)
	return err
}

func (r *PostgresRepository) CreateFood(ctx context.Context, food *domain.Food) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	return r.DB.QueryRowContext(ctx,
		"INSERT INTO foods (name, description, price_cents, image_url) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		food.Name, food.Description, int64(food.Price), food.ImageURL,
	).Scan(&food.ID, &food.CreatedAt)
}

func (r *PostgresRepository) ListFoods(ctx context.Context) ([]domain.Food, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, description, price_cents, image_url, created_at
		FROM foods
		ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []domain.Food
	for rows.Next() {
		var f domain.Food
		var price int64
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &price, &f.ImageURL, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Price = domain.Cents(price)
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (r *PostgresRepository) GetFood(ctx context.Context, id int) (*domain.Food, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var f domain.Food
	var price int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, price_cents, image_url, created_at FROM foods WHERE id = $1", id,
	).Scan(&f.ID, &f.Name, &f.Description, &price, &f.ImageURL, &f.CreatedAt)
	if err != nil {
		return nil, notFound("food", id, err)
	}
	f.Price = domain.Cents(price)
	return &f, nil
}

// GetFoodsByIDs returns the current menu rows for the given ids in one query;
// absent ids are simply missing from the map so the caller can report them per
// item.
func (r *PostgresRepository) GetFoodsByIDs(ctx context.Context, ids []int) (map[int]domain.Food, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description, price_cents, image_url, created_at FROM foods WHERE id = ANY($1)",
		pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := make(map[int]domain.Food, len(ids))
	for rows.Next() {
		var f domain.Food
		var price int64
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &price, &f.ImageURL, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Price = domain.Cents(price)
		foods[f.ID] = f
	}
	return foods, rows.Err()
}

func (r *PostgresRepository) UpdateFood(ctx context.Context, food *domain.Food) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx,
		"UPDATE foods SET name = $1, description = $2, price_cents = $3 WHERE id = $4",
		food.Name, food.Description, int64(food.Price), food.ID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("food %d: %w", food.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepository) DeleteFood(ctx context.Context, id int) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, "DELETE FROM foods WHERE id = $1", id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("food %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepository) UpdateFoodImage(ctx context.Context, id int, imageURL string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, "UPDATE foods SET image_url = $1 WHERE id = $2", imageURL, id)
	return err
}
