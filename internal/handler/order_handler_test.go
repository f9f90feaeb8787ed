package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"floralshop/internal/auth"
	"floralshop/internal/cart"
	"floralshop/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_Place(t *testing.T) {
	who := &auth.Identity{UserID: "U1"}
	c := cart.Apply(cart.Empty(), cart.AddItem{
		Item:     cart.Item{ProductID: "P1", Price: decimal.NewFromInt(10), CountInStock: 5},
		Quantity: 1,
	})

	tests := []struct {
		name           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectCleared  bool
	}{
		{
			name:           "Success clears the cart",
			mockReturn:     &model.Order{ID: uuid.New(), UserID: "U1", TotalPrice: decimal.NewFromInt(26)},
			expectedStatus: http.StatusCreated,
			expectCleared:  true,
		},
		{
			name:           "Incomplete checkout",
			mockError:      model.NewValidationError(model.ErrCodeIncompleteCheckout, "payment method required"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Out of stock",
			mockError:      model.ErrOutOfStock,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Database failure",
			mockError:      errors.New("failed to create order: boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			mockService.On("PlaceOrder", mock.Anything, who, mock.MatchedBy(func(got cart.Cart) bool {
				return len(got.Items) == 1 && got.Items[0].ProductID == "P1" && got.Items[0].Quantity == 1
			})).Return(tt.mockReturn, tt.mockError)
			handler := NewOrderHandler(mockService, cart.NewCookieStore(time.Hour, false), zerolog.Nop())

			req := withIdentity(withCart(t, httptest.NewRequest(http.MethodPost, "/api/orders", nil), c), who)
			w := serve(http.MethodPost, "/api/orders", handler.Place, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			cookie := responseCookie(w, cart.SnapshotKey)
			if tt.expectCleared {
				require.NotNil(t, cookie)
				assert.Less(t, cookie.MaxAge, 0)
			} else {
				assert.Nil(t, cookie)
			}
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "boom")
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_GetByID(t *testing.T) {
	who := &auth.Identity{UserID: "U1"}
	orderID := uuid.New()

	tests := []struct {
		name           string
		path           string
		mockReturn     *model.Order
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Success",
			path:           orderID.String(),
			mockReturn:     &model.Order{ID: orderID, UserID: "U1"},
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found or not owner",
			path:           orderID.String(),
			mockError:      model.ErrOrderNotFound,
			expectService:  true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid UUID",
			path:           "invalid-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("GetByID", mock.Anything, who, orderID).Return(tt.mockReturn, tt.mockError)
			}
			handler := NewOrderHandler(mockService, cart.NewCookieStore(time.Hour, false), zerolog.Nop())

			req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/orders/"+tt.path, nil), who)
			w := serve(http.MethodGet, "/api/orders/{id}", handler.GetByID, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.Order
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, orderID, got.ID)
			}
			if !tt.expectService {
				mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderHandler_History(t *testing.T) {
	who := &auth.Identity{UserID: "U1"}
	mockService := new(MockOrderService)
	mockService.On("History", mock.Anything, who).Return(nil, nil)
	handler := NewOrderHandler(mockService, cart.NewCookieStore(time.Hour, false), zerolog.Nop())

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/orders/history", nil), who)
	w := serve(http.MethodGet, "/api/orders/history", handler.History, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAdminHandler(t *testing.T) {
	users := new(MockUserService)
	orders := new(MockOrderService)
	users.On("List", mock.Anything).Return([]model.User{{ID: "U1", Email: "uma@example.com"}}, nil)
	orders.On("ListAll", mock.Anything).Return(nil, errors.New("db down"))
	handler := NewAdminHandler(users, orders, zerolog.Nop())

	w := serve(http.MethodGet, "/api/admin/users", handler.Users, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uma@example.com")
	assert.NotContains(t, w.Body.String(), "password")

	w = serve(http.MethodGet, "/api/admin/orders", handler.Orders, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
