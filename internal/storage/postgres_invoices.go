package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tableside/internal/domain"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

func (r *PostgresRepository) GetInvoiceForOrder(ctx context.Context, orderID int) (*domain.Invoice, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	inv, err := r.scanInvoice(r.DB.QueryRowContext(ctx,
		invoiceSelect+" WHERE i.order_id = $1", orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice for order %d: %w", orderID, domain.ErrNotFound)
	}
	return inv, err
}

// NextInvoiceSeq derives the next invoice sequence from the highest existing
// invoice id. Numbers therefore keep incrementing across calendar years even
// though the invoice number carries a year prefix.
func (r *PostgresRepository) NextInvoiceSeq(ctx context.Context) (int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var seq int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id), 0) + 1 FROM invoices",
	).Scan(&seq)
	return seq, err
}

// InsertInvoice maps the unique constraint on order_id to ErrInvoiceExists so
// a racing double completion can fetch the winner instead of failing.
func (r *PostgresRepository) InsertInvoice(ctx context.Context, inv *domain.Invoice) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO invoices (order_id, table_id, invoice_number, subtotal_cents, tax_cents,
			discount_cents, total_cents, payment_status, payment_method, preparation_time, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		inv.OrderID, inv.TableID, inv.Number, int64(inv.Subtotal), int64(inv.TaxAmount),
		int64(inv.DiscountAmount), int64(inv.TotalAmount), string(inv.PaymentStatus),
		inv.PaymentMethod, inv.PreparationTime, inv.IssuedAt,
	).Scan(&inv.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("order %d: %w", inv.OrderID, domain.ErrInvoiceExists)
	}
	return err
}

const invoiceSelect = `
	SELECT i.id, i.order_id, i.table_id, i.invoice_number, i.subtotal_cents, i.tax_cents,
		i.discount_cents, i.total_cents, i.payment_status, i.payment_method,
		i.preparation_time, i.issued_at, t.name
	FROM invoices i
	JOIN tables t ON i.table_id = t.id`

func (r *PostgresRepository) scanInvoice(row interface{ Scan(...any) error }) (*domain.Invoice, error) {
	var inv domain.Invoice
	var subtotal, tax, discount, total int64
	var paymentStatus string
	err := row.Scan(
		&inv.ID, &inv.OrderID, &inv.TableID, &inv.Number, &subtotal, &tax,
		&discount, &total, &paymentStatus, &inv.PaymentMethod,
		&inv.PreparationTime, &inv.IssuedAt, &inv.TableName,
	)
	if err != nil {
		return nil, err
	}
	inv.Subtotal = domain.Cents(subtotal)
	inv.TaxAmount = domain.Cents(tax)
	inv.DiscountAmount = domain.Cents(discount)
	inv.TotalAmount = domain.Cents(total)
	inv.PaymentStatus = domain.PaymentStatus(paymentStatus)
	return &inv, nil
}

// GetInvoice returns the full denormalized graph the invoice page renders.
func (r *PostgresRepository) GetInvoice(ctx context.Context, id int) (*domain.Invoice, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	inv, err := r.scanInvoice(r.DB.QueryRowContext(ctx, invoiceSelect+" WHERE i.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	inv.Order, err = r.GetOrder(ctx, inv.OrderID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PostgresRepository) MarkInvoicePaid(ctx context.Context, id int, method string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx,
		"UPDATE invoices SET payment_status = 'paid', payment_method = $1 WHERE id = $2",
		method, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("invoice %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
