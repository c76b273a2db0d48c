package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shoplite/shoplite-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CartItem{}))
	return db
}

func newTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()
	db := setupCartTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, uuid.New()
}

func snapshot(productID int64, title string, price string) ProductSnapshot {
	return ProductSnapshot{
		ProductID: productID,
		Title:     title,
		UnitPrice: decimal.RequireFromString(price),
		Image:     "https://cdn.example.com/p.jpg",
	}
}

func TestAddDefaultsToOneAndAccumulates(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	cart, err := svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549"), 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549"), 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)
	require.Equal(t, 3, cart.ItemCount)
	require.True(t, cart.Subtotal.Equal(decimal.RequireFromString("1647")))
}

func TestSubtotalRecomputedAcrossLines(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549.50"), 2)
	require.NoError(t, err)
	cart, err := svc.Add(ctx, userID, snapshot(2, "Perfume Oil", "13.25"), 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	require.Equal(t, 3, cart.ItemCount)
	require.True(t, cart.Subtotal.Equal(decimal.RequireFromString("1112.25")),
		"subtotal was %s", cart.Subtotal)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549"), 2)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, userID, 1, 0)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, 0, cart.ItemCount)
	require.True(t, cart.Subtotal.IsZero())
}

func TestSetQuantityReplacesCount(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549"), 2)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, userID, 1, 5)
	require.NoError(t, err)
	require.Equal(t, 5, cart.Items[0].Quantity)
}

func TestSetQuantityMissingLineIsNoOp(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549"), 1)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, userID, 42, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, int64(1), cart.Items[0].ProductID)
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	cart, err := svc.Remove(ctx, userID, 99)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestClearEmptiesCart(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549"), 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, userID, snapshot(2, "Perfume Oil", "13"), 4)
	require.NoError(t, err)

	cart, err := svc.Clear(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// clearing again still succeeds
	cart, err = svc.Clear(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc, userID := newTestService(t)
	otherID := uuid.New()
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, snapshot(1, "iPhone 9", "549"), 1)
	require.NoError(t, err)

	cart, err := svc.Get(ctx, otherID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestAddValidatesSnapshot(t *testing.T) {
	svc, userID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, ProductSnapshot{ProductID: 0, Title: "x"}, 1)
	require.Error(t, err)

	_, err = svc.Add(ctx, userID, ProductSnapshot{ProductID: 1, Title: ""}, 1)
	require.Error(t, err)

	_, err = svc.Add(ctx, userID, ProductSnapshot{
		ProductID: 1,
		Title:     "neg",
		UnitPrice: decimal.RequireFromString("-1"),
	}, 1)
	require.Error(t, err)
}
