package domain

import "time"

type Table struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Occupied  bool      `json:"occupied"`
	QRCode    string    `json:"qr_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Food struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Cents     `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Order struct {
	ID              int         `json:"id"`
	TableID         int         `json:"table_id"`
	TableName       string      `json:"table_name,omitempty"`
	SessionID       *int        `json:"customer_session_id,omitempty"`
	CustomerName    string      `json:"customer_name,omitempty"`
	CustomerPhone   string      `json:"customer_phone,omitempty"`
	Status          OrderStatus `json:"status"`
	ChefID          *int        `json:"chef_id,omitempty"`
	PreparationTime *int        `json:"preparation_time,omitempty"`
	TotalAmount     Cents       `json:"total_amount"`
	Notes           string      `json:"notes,omitempty"`
	InvoiceID       *int        `json:"invoice_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderLine `json:"items"`
}

type OrderLine struct {
	ID       int    `json:"id"`
	OrderID  int    `json:"order_id"`
	FoodID   int    `json:"food_id"`
	FoodName string `json:"food_name,omitempty"`
	Quantity int    `json:"quantity"`
	// Quantity times the food price captured when the order was placed.
	Price Cents `json:"price"`
}

type CustomerSession struct {
	ID            int       `json:"id"`
	Token         string    `json:"session_token"`
	TableID       int       `json:"table_id"`
	TableName     string    `json:"table_name,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Active        bool      `json:"is_active"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Invoice struct {
	ID              int           `json:"id"`
	OrderID         int           `json:"order_id"`
	TableID         int           `json:"table_id"`
	Number          string        `json:"invoice_number"`
	Subtotal        Cents         `json:"subtotal"`
	TaxAmount       Cents         `json:"tax_amount"`
	DiscountAmount  Cents         `json:"discount_amount"`
	TotalAmount     Cents         `json:"total_amount"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentMethod   string        `json:"payment_method,omitempty"`
	PreparationTime int           `json:"preparation_time"`
	IssuedAt        time.Time     `json:"issued_at"`
	Order           *Order        `json:"order,omitempty"`
	TableName       string        `json:"table_name,omitempty"`
}

type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   int         `json:"order_id"`
	TableID   int         `json:"table_id"`
	Status    OrderStatus `json:"status"`
	Total     Cents       `json:"total_amount"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderPlaced        = "order_placed"
	EventOrderStatusChanged = "order_status_changed"
)
