package mocks

import (
	"context"
	"testing"
	"time"

	"tableside/internal/domain"

	"github.com/stretchr/testify/mock"
)

type SessionCache struct {
	mock.Mock
}

func NewSessionCache(t *testing.T) *SessionCache {
	m := &SessionCache{}
	register(t, &m.Mock)
	return m
}

func (m *SessionCache) SessionKey(token string) string {
	return m.Called(token).String(0)
}

func (m *SessionCache) GetSession(ctx context.Context, key string) (*domain.CustomerSession, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerSession), args.Error(1)
}

func (m *SessionCache) SetSession(ctx context.Context, key string, session *domain.CustomerSession, ttl time.Duration) error {
	return m.Called(ctx, key, session, ttl).Error(0)
}

type OrderEventPublisher struct {
	mock.Mock
}

func NewOrderEventPublisher(t *testing.T) *OrderEventPublisher {
	m := &OrderEventPublisher{}
	register(t, &m.Mock)
	return m
}

func (m *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t *testing.T) *QRGenerator {
	m := &QRGenerator{}
	register(t, &m.Mock)
	return m
}

func (m *QRGenerator) Generate(tableID int) ([]byte, error) {
	args := m.Called(tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type SessionMinter struct {
	mock.Mock
}

func NewSessionMinter(t *testing.T) *SessionMinter {
	m := &SessionMinter{}
	register(t, &m.Mock)
	return m
}

func (m *SessionMinter) NewSession(tableID int, customerName, customerPhone string) (*domain.CustomerSession, error) {
	args := m.Called(tableID, customerName, customerPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerSession), args.Error(1)
}

type InvoiceGenerator struct {
	mock.Mock
}

func NewInvoiceGenerator(t *testing.T) *InvoiceGenerator {
	m := &InvoiceGenerator{}
	register(t, &m.Mock)
	return m
}

func (m *InvoiceGenerator) GenerateForOrder(ctx context.Context, order *domain.Order) (*domain.Invoice, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
