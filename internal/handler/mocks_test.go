package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"floralshop/internal/auth"
	"floralshop/internal/cart"
	"floralshop/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockReviewService is a mock implementation of ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) SubmitReview(ctx context.Context, productID string, who *auth.Identity, req model.ReviewRequest) (*model.ReviewResponse, error) {
	args := m.Called(ctx, productID, who, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewResponse), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, who *auth.Identity, c cart.Cart) (*model.Order, error) {
	args := m.Called(ctx, who, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) History(ctx context.Context, who *auth.Identity) ([]model.Order, error) {
	args := m.Called(ctx, who)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, who *auth.Identity, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, who, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, req model.LoginRequest) (*auth.Identity, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// serve routes req through a chi router holding a single pattern so URL params resolve.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// withIdentity attaches who to the request as the session middleware would.
func withIdentity(req *http.Request, who *auth.Identity) *http.Request {
	return req.WithContext(auth.WithIdentity(req.Context(), who))
}

// withCart adds a cart snapshot cookie to req.
func withCart(t *testing.T, req *http.Request, c cart.Cart) *http.Request {
	t.Helper()
	value, err := cart.EncodeSnapshot(c)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cart.SnapshotKey, Value: value})
	return req
}

// responseCookie returns the named Set-Cookie from w, if any.
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
