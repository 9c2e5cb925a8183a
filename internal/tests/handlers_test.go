package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "tableside/internal/api/http"
	"tableside/internal/domain"
	"tableside/internal/mocks"
	"tableside/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type handlerFixture struct {
	router   *mux.Router
	tables   *mocks.TableRepository
	foods    *mocks.FoodRepository
	orders   *mocks.OrderRepository
	sessions *mocks.SessionRepository
	invoices *mocks.InvoiceRepository
	qr       *mocks.QRGenerator
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		tables:   new(mocks.TableRepository),
		foods:    new(mocks.FoodRepository),
		orders:   new(mocks.OrderRepository),
		sessions: new(mocks.SessionRepository),
		invoices: new(mocks.InvoiceRepository),
		qr:       new(mocks.QRGenerator),
	}

	tableSvc := service.NewTableService(f.tables, f.qr)
	foodSvc := service.NewFoodService(f.foods)
	sessionSvc := service.NewSessionService(f.sessions, f.orders, nil)
	invoiceSvc := service.NewInvoiceService(f.invoices)
	orderSvc := service.NewOrderService(f.orders, f.foods, f.tables, sessionSvc, invoiceSvc, nil)
	handler := httpapi.NewHandler(tableSvc, foodSvc, orderSvc, sessionSvc, invoiceSvc)

	f.router = mux.NewRouter()
	handler.RegisterRoutes(f.router)
	return f
}

func (f *handlerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSubmitOrderHandler(t *testing.T) {
	menu := map[int]domain.Food{1: {ID: 1, Name: "Burger", Price: 1000}}

	tests := []struct {
		name       string
		body       string
		setupMocks func(*handlerFixture)
		wantCode   int
	}{
		{
			name: "valid order",
			body: `{"table_id":1,"items":[{"food_id":1,"quantity":2}]}`,
			setupMocks: func(f *handlerFixture) {
				f.tables.On("GetTable", mock.Anything, 1).Return(&domain.Table{ID: 1}, nil).Once()
				f.foods.On("GetFoodsByIDs", mock.Anything, []int{1}).Return(menu, nil).Once()
				f.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order"), (*domain.CustomerSession)(nil)).Return(nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:       "invalid JSON",
			body:       `{invalid}`,
			setupMocks: func(f *handlerFixture) {},
			wantCode:   http.StatusBadRequest,
		},
		{
			name: "validation failure",
			body: `{"table_id":0,"items":[]}`,
			setupMocks: func(f *handlerFixture) {
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "occupied table",
			body: `{"table_id":1,"items":[{"food_id":1,"quantity":1}]}`,
			setupMocks: func(f *handlerFixture) {
				f.tables.On("GetTable", mock.Anything, 1).Return(&domain.Table{ID: 1}, nil).Once()
				f.foods.On("GetFoodsByIDs", mock.Anything, []int{1}).Return(menu, nil).Once()
				f.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order"), (*domain.CustomerSession)(nil)).
					Return(fmt.Errorf("table 1: %w", domain.ErrTableOccupied)).Once()
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newHandlerFixture()
			testCase.setupMocks(f)

			w := f.do("POST", "/api/orders", testCase.body)

			assert.Equal(t, testCase.wantCode, w.Code)
			f.orders.AssertExpectations(t)
		})
	}
}

func TestSubmitOrderHandlerSessionResponse(t *testing.T) {
	f := newHandlerFixture()

	f.tables.On("GetTable", mock.Anything, 1).Return(&domain.Table{ID: 1}, nil).Once()
	f.foods.On("GetFoodsByIDs", mock.Anything, []int{1}).
		Return(map[int]domain.Food{1: {ID: 1, Price: 500}}, nil).Once()
	f.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order"), mock.AnythingOfType("*domain.CustomerSession")).Return(nil).Once()

	w := f.do("POST", "/api/orders", `{"table_id":1,"session_aware":true,"customer_name":"Ada","items":[{"food_id":1,"quantity":1}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	token, ok := response["session_token"].(string)
	assert.True(t, ok, "session_token missing from %v", response)
	assert.Len(t, token, 48)
	assert.Equal(t, "/api/sessions/"+token+"/orders", response["dashboard_url"])
}

func TestOrderHandlers(t *testing.T) {
	t.Run("get unknown order", func(t *testing.T) {
		f := newHandlerFixture()
		f.orders.On("GetOrder", mock.Anything, 99).Return(nil, fmt.Errorf("order 99: %w", domain.ErrNotFound)).Once()

		w := f.do("GET", "/api/orders/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("status update on completed order", func(t *testing.T) {
		f := newHandlerFixture()
		f.orders.On("GetOrder", mock.Anything, 5).
			Return(&domain.Order{ID: 5, Status: domain.StatusCompleted}, nil).Once()

		w := f.do("PUT", "/api/orders/5/status", `{"status":"preparing"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("delete completed order", func(t *testing.T) {
		f := newHandlerFixture()
		f.orders.On("GetOrder", mock.Anything, 5).
			Return(&domain.Order{ID: 5, Status: domain.StatusCompleted}, nil).Once()

		w := f.do("DELETE", "/api/orders/5", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("list orders empty", func(t *testing.T) {
		f := newHandlerFixture()
		f.orders.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()

		w := f.do("GET", "/api/orders", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestSessionHandlers(t *testing.T) {
	session := &domain.CustomerSession{
		ID:        1,
		Token:     "tok",
		TableID:   2,
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().Add(-time.Hour),
	}

	t.Run("resolve active session", func(t *testing.T) {
		f := newHandlerFixture()
		f.sessions.On("GetSessionByToken", mock.Anything, "tok").Return(session, nil).Once()

		w := f.do("GET", "/api/sessions/tok", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired session", func(t *testing.T) {
		expired := *session
		expired.ExpiresAt = time.Now().Add(-time.Minute)

		f := newHandlerFixture()
		f.sessions.On("GetSessionByToken", mock.Anything, "tok").Return(&expired, nil).Once()

		w := f.do("GET", "/api/sessions/tok", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("session order dashboard", func(t *testing.T) {
		f := newHandlerFixture()
		f.sessions.On("GetSessionByToken", mock.Anything, "tok").Return(session, nil).Once()
		f.orders.On("ListOrdersForTableSince", mock.Anything, 2, session.CreatedAt).
			Return([]domain.Order{{ID: 8, TableID: 2, Status: domain.StatusReady}}, nil).Once()

		w := f.do("GET", "/api/sessions/tok/orders", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Orders []domain.Order `json:"orders"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Orders, 1)
		assert.Equal(t, 8, response.Orders[0].ID)
	})
}

func TestTableHandlers(t *testing.T) {
	t.Run("create table", func(t *testing.T) {
		f := newHandlerFixture()
		f.tables.On("CreateTable", mock.Anything, mock.AnythingOfType("*domain.Table")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Table).ID = 1
			}).Return(nil).Once()

		w := f.do("POST", "/api/tables", `{"name":"Window 1"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("create table empty name", func(t *testing.T) {
		f := newHandlerFixture()

		w := f.do("POST", "/api/tables", `{"name":"  "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("qr code content type", func(t *testing.T) {
		f := newHandlerFixture()
		f.tables.On("GetTableQRCode", mock.Anything, 1).Return([]byte("png-bytes"), nil).Once()

		w := f.do("GET", "/api/tables/1/qrcode", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})
}

func TestInvoiceHandlers(t *testing.T) {
	invoice := &domain.Invoice{
		ID:            3,
		OrderID:       7,
		Number:        "INV-2026-000003",
		Subtotal:      10000,
		TaxAmount:     1000,
		TotalAmount:   11000,
		PaymentStatus: domain.PaymentUnpaid,
	}

	t.Run("get invoice", func(t *testing.T) {
		f := newHandlerFixture()
		f.invoices.On("GetInvoice", mock.Anything, 3).Return(invoice, nil).Once()

		w := f.do("GET", "/api/invoices/3", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var got domain.Invoice
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, domain.Cents(11000), got.TotalAmount)
	})

	t.Run("get unknown invoice", func(t *testing.T) {
		f := newHandlerFixture()
		f.invoices.On("GetInvoice", mock.Anything, 99).Return(nil, fmt.Errorf("invoice 99: %w", domain.ErrNotFound)).Once()

		w := f.do("GET", "/api/invoices/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("pay invoice", func(t *testing.T) {
		paid := *invoice
		paid.PaymentStatus = domain.PaymentPaid
		paid.PaymentMethod = "card"

		f := newHandlerFixture()
		f.invoices.On("MarkInvoicePaid", mock.Anything, 3, "card").Return(nil).Once()
		f.invoices.On("GetInvoice", mock.Anything, 3).Return(&paid, nil).Once()

		w := f.do("POST", "/api/invoices/3/pay", `{"payment_method":"card"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		f.invoices.AssertExpectations(t)
	})
}

func TestHealthCheckHandler(t *testing.T) {
	f := newHandlerFixture()

	w := f.do("GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}
