package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tableside/internal/domain"
)

// Tax is a fixed 10%, expressed in basis points so the arithmetic stays in
// integer minor units.
const taxRateBasisPoints = 1000

// nextInvoiceNumber is the single place the numbering scheme lives: a year
// prefix plus a zero-padded global sequence. The sequence comes from the
// highest existing invoice id, so it does not reset when the year rolls over.
func nextInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%06d", year, seq)
}

type InvoiceService struct {
	invoices InvoiceRepository
}

func NewInvoiceService(invoices InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices}
}

// GenerateForOrder is idempotent: if the order already has an invoice it is
// returned unchanged, including when a concurrent completion wins the insert
// race (the unique constraint on order_id turns the loser into a fetch).
func (s *InvoiceService) GenerateForOrder(ctx context.Context, order *domain.Order) (*domain.Invoice, error) {
	existing, err := s.invoices.GetInvoiceForOrder(ctx, order.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	seq, err := s.invoices.NextInvoiceSeq(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := order.TotalAmount
	tax := domain.Cents((int64(subtotal)*taxRateBasisPoints + 5000) / 10000)
	var discount domain.Cents

	preparationTime := 0
	if order.PreparationTime != nil {
		preparationTime = *order.PreparationTime
	}

	invoice := &domain.Invoice{
		OrderID:         order.ID,
		TableID:         order.TableID,
		Number:          nextInvoiceNumber(time.Now().Year(), seq),
		Subtotal:        subtotal,
		TaxAmount:       tax,
		DiscountAmount:  discount,
		TotalAmount:     subtotal + tax - discount,
		PaymentStatus:   domain.PaymentUnpaid,
		PreparationTime: preparationTime,
		IssuedAt:        time.Now(),
	}

	err = s.invoices.InsertInvoice(ctx, invoice)
	if errors.Is(err, domain.ErrInvoiceExists) {
		// Lost a double-completion race; the pre-check above should make this
		// rare, so log it loudly and hand back the winner.
		log.Printf("[tableside] duplicate invoice attempt for order %d, returning existing", order.ID)
		return s.invoices.GetInvoiceForOrder(ctx, order.ID)
	}
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, id int) (*domain.Invoice, error) {
	return s.invoices.GetInvoice(ctx, id)
}

func (s *InvoiceService) MarkPaid(ctx context.Context, id int, method string) (*domain.Invoice, error) {
	if err := s.invoices.MarkInvoicePaid(ctx, id, method); err != nil {
		return nil, err
	}
	return s.invoices.GetInvoice(ctx, id)
}

var _ InvoiceServiceInterface = (*InvoiceService)(nil)
var _ InvoiceGenerator = (*InvoiceService)(nil)
