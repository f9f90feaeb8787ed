package repository

import (
	"context"
	"testing"
	"time"

	"floralshop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(userID string, createdAt time.Time) *model.Order {
	return &model.Order{
		ID:     uuid.New(),
		UserID: userID,
		ShippingAddress: model.ShippingAddress{
			FullName:   "Uma Hart",
			Address:    "1 Garden Row",
			City:       "Leeds",
			PostalCode: "LS1",
			Country:    "UK",
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    decimal.RequireFromString("20.00"),
		ShippingPrice: decimal.RequireFromString("15.00"),
		TaxPrice:      decimal.RequireFromString("3.00"),
		TotalPrice:    decimal.RequireFromString("38.00"),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	seedProducts(t, pool, []model.Product{
		testProduct("P001", "Lily", "Cut", "10.00", 5),
		testProduct("P002", "Iris", "Cut", "5.00", 5),
	})

	repo := NewOrderRepository(pool, testLogger())
	ctx := context.Background()

	order := testOrder("U1", time.Now().UTC().Truncate(time.Microsecond))
	items := []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "P002", Slug: "slug-P002", Name: "Iris", Price: decimal.RequireFromString("5.00"), Quantity: 2},
		{ID: uuid.New(), OrderID: order.ID, ProductID: "P001", Slug: "slug-P001", Name: "Lily", Price: decimal.RequireFromString("10.00"), Quantity: 1},
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "U1", got.UserID)
	assert.Equal(t, order.ShippingAddress, got.ShippingAddress)
	assert.Equal(t, "PayPal", got.PaymentMethod)
	assert.True(t, order.TotalPrice.Equal(got.TotalPrice))
	assert.False(t, got.IsPaid)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "P002", got.Items[0].ProductID, "items keep placement order")
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "P001", got.Items[1].ProductID)
}

func TestOrderRepository_RollbackLeavesNothing(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, testLogger())
	ctx := context.Background()

	order := testOrder("U1", time.Now())
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))

	// Unknown product violates the foreign key.
	err = repo.CreateOrderItems(ctx, tx, []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "NOPE", Slug: "nope", Name: "nope", Price: decimal.NewFromInt(1), Quantity: 1},
	})
	require.Error(t, err)
	require.NoError(t, tx.Rollback(ctx))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_CreateOrderItems_Empty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, testLogger())
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	assert.NoError(t, repo.CreateOrderItems(ctx, tx, nil))
}

func TestOrderRepository_Lists(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	older := testOrder("U1", base.Add(-time.Hour))
	newer := testOrder("U1", base)
	other := testOrder("U2", base.Add(-30*time.Minute))

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	for _, o := range []*model.Order{older, newer, other} {
		require.NoError(t, repo.CreateOrder(ctx, tx, o))
	}
	require.NoError(t, tx.Commit(ctx))

	mine, err := repo.ListByUser(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, newer.ID, mine[0].ID)
	assert.Equal(t, older.ID, mine[1].ID)

	none, err := repo.ListByUser(ctx, "U3")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{newer.ID, other.ID, older.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, testLogger())

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}
