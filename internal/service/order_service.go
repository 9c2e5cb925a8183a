package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"tableside/internal/domain"
)

type SubmitOrderItem struct {
	FoodID   int `json:"food_id"`
	Quantity int `json:"quantity"`
}

type SubmitOrderRequest struct {
	TableID       int               `json:"table_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	Notes         string            `json:"notes"`
	Items         []SubmitOrderItem `json:"items"`
	SessionAware  bool              `json:"session_aware"`
}

type UpdateStatusRequest struct {
	Status          domain.OrderStatus `json:"status"`
	PreparationTime *int               `json:"preparation_time"`
	ChefID          *int               `json:"chef_id"`
}

type OrderService struct {
	orders    OrderRepository
	foods     FoodRepository
	tables    TableRepository
	sessions  SessionMinter
	invoices  InvoiceGenerator
	publisher OrderEventPublisher
}

func NewOrderService(orders OrderRepository, foods FoodRepository, tables TableRepository,
	sessions SessionMinter, invoices InvoiceGenerator, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		foods:     foods,
		tables:    tables,
		sessions:  sessions,
		invoices:  invoices,
		publisher: publisher,
	}
}

// Submit validates the request, snapshots menu prices into order lines and
// persists order, lines and (when session-aware) the customer session as one
// atomic unit. The repository re-checks occupancy inside that transaction.
func (s *OrderService) Submit(ctx context.Context, req *SubmitOrderRequest) (*domain.Order, *domain.CustomerSession, error) {
	verr := domain.NewValidationError()

	if req.TableID <= 0 {
		verr.Add("table_id", "must be a positive id")
	} else if _, err := s.tables.GetTable(ctx, req.TableID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			verr.Add("table_id", "table does not exist")
		} else {
			return nil, nil, err
		}
	}

	if len(req.Items) == 0 {
		verr.Add("items", "order must contain at least one item")
	}

	foodIDs := make([]int, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity < 1 {
			verr.Add("items."+strconv.Itoa(i)+".quantity", "must be at least 1")
		}
		if item.FoodID <= 0 {
			verr.Add("items."+strconv.Itoa(i)+".food_id", "must be a positive id")
			continue
		}
		foodIDs = append(foodIDs, item.FoodID)
	}

	var foods map[int]domain.Food
	if len(foodIDs) > 0 {
		var err error
		foods, err = s.foods.GetFoodsByIDs(ctx, foodIDs)
		if err != nil {
			return nil, nil, err
		}
		for i, item := range req.Items {
			if item.FoodID <= 0 {
				continue
			}
			if _, ok := foods[item.FoodID]; !ok {
				verr.Add("items."+strconv.Itoa(i)+".food_id", "food does not exist")
			}
		}
	}

	if verr.HasErrors() {
		return nil, nil, verr
	}

	// Price snapshot: each line freezes quantity * current menu price, so
	// later menu edits never touch historical orders.
	var total domain.Cents
	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		food := foods[item.FoodID]
		linePrice := domain.Cents(int64(food.Price) * int64(item.Quantity))
		total += linePrice
		lines = append(lines, domain.OrderLine{
			FoodID:   item.FoodID,
			FoodName: food.Name,
			Quantity: item.Quantity,
			Price:    linePrice,
		})
	}

	order := &domain.Order{
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        domain.StatusPending,
		TotalAmount:   total,
		Notes:         req.Notes,
		Items:         lines,
	}

	var session *domain.CustomerSession
	if req.SessionAware {
		var err error
		session, err = s.sessions.NewSession(req.TableID, req.CustomerName, req.CustomerPhone)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.orders.CreateOrder(ctx, order, session); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, domain.EventOrderPlaced, order)
	return order, session, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx)
}

// UpdateStatus applies a staff transition. Entering completed triggers
// invoice generation; the generator itself is idempotent, so a repeated or
// racing completion still yields a single invoice.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, req *UpdateStatusRequest) (*domain.Order, error) {
	verr := domain.NewValidationError()
	if !req.Status.Valid() {
		verr.Add("status", fmt.Sprintf("unknown status %q", req.Status))
	}
	if req.PreparationTime != nil && *req.PreparationTime < 1 {
		verr.Add("preparation_time", "must be at least 1 minute")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("cannot move order from %s to %s: %w", order.Status, req.Status, domain.ErrOrderClosed)
	}

	if err := s.orders.UpdateOrderStatus(ctx, id, req.Status, req.PreparationTime, req.ChefID); err != nil {
		return nil, err
	}

	order.Status = req.Status
	if req.PreparationTime != nil {
		order.PreparationTime = req.PreparationTime
	}
	if req.ChefID != nil {
		order.ChefID = req.ChefID
	}

	// The generator is idempotent, so running it on every completion request
	// (including a repeated one) either creates the invoice or returns the
	// existing one. A generator failure leaves the order completed but
	// uninvoiced; re-sending the same completion retries it.
	if req.Status == domain.StatusCompleted {
		invoice, err := s.invoices.GenerateForOrder(ctx, order)
		if err != nil {
			return nil, fmt.Errorf("order %d completed but invoice generation failed: %w", id, err)
		}
		order.InvoiceID = &invoice.ID
	}

	s.publish(ctx, domain.EventOrderStatusChanged, order)
	return order, nil
}

// Delete removes the order's lines and then the order. Completed orders carry
// an invoice and stay on the books.
func (s *OrderService) Delete(ctx context.Context, id int) error {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == domain.StatusCompleted {
		return fmt.Errorf("order %d is completed and invoiced: %w", id, domain.ErrOrderClosed)
	}
	return s.orders.DeleteOrder(ctx, id)
}

// Event delivery is best effort: the notification collaborator polls anyway,
// so a broker hiccup must not fail the customer's request.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := domain.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		TableID:   order.TableID,
		Status:    order.Status,
		Total:     order.TotalAmount,
		Timestamp: time.Now(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("[tableside] failed to publish %s for order %d: %v", eventType, order.ID, err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
