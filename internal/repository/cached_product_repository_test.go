package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"floralshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProductRepository) UpdateReviewAggregate(ctx context.Context, tx pgx.Tx, productID string, numReviews int, rating float64) error {
	args := m.Called(ctx, tx, productID, numReviews, rating)
	return args.Error(0)
}

func (m *mockProductRepository) Upsert(ctx context.Context, products []model.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func TestCachedProductRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	product := testProduct("P1", "Peony", "Cut", "9.50", 4)
	encoded, err := json.Marshal(product)
	require.NoError(t, err)

	t.Run("Hit skips the database", func(t *testing.T) {
		c := new(mockCache)
		next := new(mockProductRepository)
		c.On("Get", ctx, "test:product:P1").Return(string(encoded), nil)

		repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
		got, err := repo.GetByID(ctx, "P1")

		require.NoError(t, err)
		assert.Equal(t, "Peony", got.Name)
		assert.True(t, product.Price.Equal(got.Price))
		next.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Miss loads and stores", func(t *testing.T) {
		c := new(mockCache)
		next := new(mockProductRepository)
		c.On("Get", ctx, "test:product:P1").Return("", nil)
		next.On("GetByID", ctx, "P1").Return(&product, nil)
		c.On("Set", ctx, "test:product:P1", encoded, time.Minute).Return(nil)

		repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
		got, err := repo.GetByID(ctx, "P1")

		require.NoError(t, err)
		assert.Equal(t, &product, got)
		c.AssertExpectations(t)
		next.AssertExpectations(t)
	})

	t.Run("Not found is not cached", func(t *testing.T) {
		c := new(mockCache)
		next := new(mockProductRepository)
		c.On("Get", ctx, "test:product:P9").Return("", nil)
		next.On("GetByID", ctx, "P9").Return(nil, nil)

		repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
		got, err := repo.GetByID(ctx, "P9")

		require.NoError(t, err)
		assert.Nil(t, got)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache failure falls through", func(t *testing.T) {
		c := new(mockCache)
		next := new(mockProductRepository)
		c.On("Get", ctx, "test:product:P1").Return("", errors.New("connection refused"))
		next.On("GetByID", ctx, "P1").Return(&product, nil)
		c.On("Set", ctx, "test:product:P1", encoded, time.Minute).Return(errors.New("connection refused"))

		repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
		got, err := repo.GetByID(ctx, "P1")

		require.NoError(t, err)
		assert.Equal(t, "P1", got.ID)
	})

	t.Run("Database error is returned", func(t *testing.T) {
		c := new(mockCache)
		next := new(mockProductRepository)
		c.On("Get", ctx, "test:product:P1").Return("", nil)
		next.On("GetByID", ctx, "P1").Return(nil, errors.New("db down"))

		repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
		got, err := repo.GetByID(ctx, "P1")

		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestCachedProductRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()
	product := testProduct("P1", "Peony", "Cut", "9.50", 4)

	c := new(mockCache)
	next := new(mockProductRepository)
	c.On("Get", ctx, "test:product-slug:slug-P1").Return("not json", nil)
	next.On("GetBySlug", ctx, "slug-P1").Return(&product, nil)
	c.On("Set", ctx, "test:product-slug:slug-P1", mock.Anything, time.Minute).Return(nil)

	repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
	got, err := repo.GetBySlug(ctx, "slug-P1")

	require.NoError(t, err)
	assert.Equal(t, "P1", got.ID)
	next.AssertExpectations(t)
}

func TestCachedProductRepository_UpsertInvalidates(t *testing.T) {
	ctx := context.Background()
	products := []model.Product{testProduct("P1", "Peony", "Cut", "9.50", 4)}

	c := new(mockCache)
	next := new(mockProductRepository)
	next.On("Upsert", ctx, products).Return(nil)
	c.On("Delete", ctx, []string{"test:product:P1", "test:product-slug:slug-P1"}).Return(nil)

	repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
	require.NoError(t, repo.Upsert(ctx, products))

	c.AssertExpectations(t)
}

func TestCachedProductRepository_PassThrough(t *testing.T) {
	ctx := context.Background()

	c := new(mockCache)
	next := new(mockProductRepository)
	next.On("Categories", ctx).Return([]string{"Cut"}, nil)

	repo := NewCachedProductRepository(next, c, time.Minute, testLogger())
	categories, err := repo.Categories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Cut"}, categories)
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
