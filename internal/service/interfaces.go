package service

import (
	"context"
	"time"

	"tableside/internal/domain"
)

type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) error
	ListTables(ctx context.Context) ([]domain.Table, error)
	GetTable(ctx context.Context, id int) (*domain.Table, error)
	RenameTable(ctx context.Context, id int, name string) error
	DeleteTable(ctx context.Context, id int) error
	GetTableQRCode(ctx context.Context, id int) ([]byte, error)
	SaveTableQRCode(ctx context.Context, id int, qr []byte) error
}

type FoodRepository interface {
	CreateFood(ctx context.Context, food *domain.Food) error
	ListFoods(ctx context.Context) ([]domain.Food, error)
	GetFood(ctx context.Context, id int) (*domain.Food, error)
	GetFoodsByIDs(ctx context.Context, ids []int) (map[int]domain.Food, error)
	UpdateFood(ctx context.Context, food *domain.Food) error
	DeleteFood(ctx context.Context, id int) error
	UpdateFoodImage(ctx context.Context, id int, imageURL string) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, session *domain.CustomerSession) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersForTableSince(ctx context.Context, tableID int, since time.Time) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus, preparationTime, chefID *int) error
	DeleteOrder(ctx context.Context, id int) error
}

type SessionRepository interface {
	InsertSession(ctx context.Context, session *domain.CustomerSession) error
	GetSessionByToken(ctx context.Context, token string) (*domain.CustomerSession, error)
}

type InvoiceRepository interface {
	GetInvoiceForOrder(ctx context.Context, orderID int) (*domain.Invoice, error)
	NextInvoiceSeq(ctx context.Context) (int64, error)
	InsertInvoice(ctx context.Context, inv *domain.Invoice) error
	GetInvoice(ctx context.Context, id int) (*domain.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id int, method string) error
}

type SessionCache interface {
	SessionKey(token string) string
	GetSession(ctx context.Context, key string) (*domain.CustomerSession, error)
	SetSession(ctx context.Context, key string, session *domain.CustomerSession, ttl time.Duration) error
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(tableID int) ([]byte, error)
}

// SessionMinter builds an unsaved session so order submission can persist it
// inside the same transaction as the order.
type SessionMinter interface {
	NewSession(tableID int, customerName, customerPhone string) (*domain.CustomerSession, error)
}

type InvoiceGenerator interface {
	GenerateForOrder(ctx context.Context, order *domain.Order) (*domain.Invoice, error)
}

type TableServiceInterface interface {
	Create(ctx context.Context, name string) (*domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	Get(ctx context.Context, id int) (*domain.Table, error)
	Rename(ctx context.Context, id int, name string) (*domain.Table, error)
	Delete(ctx context.Context, id int) error
	QRCode(ctx context.Context, id int) ([]byte, error)
}

type FoodServiceInterface interface {
	Create(ctx context.Context, food *domain.Food) error
	List(ctx context.Context) ([]domain.Food, error)
	Get(ctx context.Context, id int) (*domain.Food, error)
	Update(ctx context.Context, food *domain.Food) error
	Delete(ctx context.Context, id int) error
	UpdateImage(ctx context.Context, id int, imageURL string) error
}

type OrderServiceInterface interface {
	Submit(ctx context.Context, req *SubmitOrderRequest) (*domain.Order, *domain.CustomerSession, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, req *UpdateStatusRequest) (*domain.Order, error)
	Delete(ctx context.Context, id int) error
}

type SessionServiceInterface interface {
	Create(ctx context.Context, tableID int, customerName, customerPhone string) (*domain.CustomerSession, error)
	Resolve(ctx context.Context, token string) (*domain.CustomerSession, error)
	Orders(ctx context.Context, session *domain.CustomerSession) ([]domain.Order, error)
}

type InvoiceServiceInterface interface {
	GenerateForOrder(ctx context.Context, order *domain.Order) (*domain.Invoice, error)
	Get(ctx context.Context, id int) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, id int, method string) (*domain.Invoice, error)
}
