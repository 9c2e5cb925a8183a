// Package mocks holds testify mocks for the service-side interfaces.
package mocks

import (
	"context"
	"testing"
	"time"

	"tableside/internal/domain"

	"github.com/stretchr/testify/mock"
)

func register(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type TableRepository struct {
	mock.Mock
}

func NewTableRepository(t *testing.T) *TableRepository {
	m := &TableRepository{}
	register(t, &m.Mock)
	return m
}

func (m *TableRepository) CreateTable(ctx context.Context, table *domain.Table) error {
	return m.Called(ctx, table).Error(0)
}

func (m *TableRepository) ListTables(ctx context.Context) ([]domain.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Table), args.Error(1)
}

func (m *TableRepository) GetTable(ctx context.Context, id int) (*domain.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *TableRepository) RenameTable(ctx context.Context, id int, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *TableRepository) DeleteTable(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TableRepository) GetTableQRCode(ctx context.Context, id int) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *TableRepository) SaveTableQRCode(ctx context.Context, id int, qr []byte) error {
	return m.Called(ctx, id, qr).Error(0)
}

type FoodRepository struct {
	mock.Mock
}

func NewFoodRepository(t *testing.T) *FoodRepository {
	m := &FoodRepository{}
	register(t, &m.Mock)
	return m
}

func (m *FoodRepository) CreateFood(ctx context.Context, food *domain.Food) error {
	return m.Called(ctx, food).Error(0)
}

func (m *FoodRepository) ListFoods(ctx context.Context) ([]domain.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Food), args.Error(1)
}

func (m *FoodRepository) GetFood(ctx context.Context, id int) (*domain.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Food), args.Error(1)
}

func (m *FoodRepository) GetFoodsByIDs(ctx context.Context, ids []int) (map[int]domain.Food, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]domain.Food), args.Error(1)
}

func (m *FoodRepository) UpdateFood(ctx context.Context, food *domain.Food) error {
	return m.Called(ctx, food).Error(0)
}

func (m *FoodRepository) DeleteFood(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *FoodRepository) UpdateFoodImage(ctx context.Context, id int, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t *testing.T) *OrderRepository {
	m := &OrderRepository{}
	register(t, &m.Mock)
	return m
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order, session *domain.CustomerSession) error {
	return m.Called(ctx, order, session).Error(0)
}

func (m *OrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) ListOrdersForTableSince(ctx context.Context, tableID int, since time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, tableID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus, preparationTime, chefID *int) error {
	return m.Called(ctx, id, status, preparationTime, chefID).Error(0)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t *testing.T) *SessionRepository {
	m := &SessionRepository{}
	register(t, &m.Mock)
	return m
}

func (m *SessionRepository) InsertSession(ctx context.Context, session *domain.CustomerSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionRepository) GetSessionByToken(ctx context.Context, token string) (*domain.CustomerSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerSession), args.Error(1)
}

type InvoiceRepository struct {
	mock.Mock
}

func NewInvoiceRepository(t *testing.T) *InvoiceRepository {
	m := &InvoiceRepository{}
	register(t, &m.Mock)
	return m
}

func (m *InvoiceRepository) GetInvoiceForOrder(ctx context.Context, orderID int) (*domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *InvoiceRepository) NextInvoiceSeq(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InvoiceRepository) InsertInvoice(ctx context.Context, inv *domain.Invoice) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InvoiceRepository) GetInvoice(ctx context.Context, id int) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *InvoiceRepository) MarkInvoicePaid(ctx context.Context, id int, method string) error {
	return m.Called(ctx, id, method).Error(0)
}
