package service

import (
	"context"
	"testing"

	"github.com/example/sweetshop/pkg/apperr"
	"github.com/example/sweetshop/pkg/models"
	"github.com/example/sweetshop/pkg/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func seedOrder(t *testing.T, store *storetest.Orders, userID primitive.ObjectID, status string, amount float64) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:      userID,
		Items:       []models.OrderItem{{SweetID: primitive.NewObjectID(), SweetName: "Choco Bar", Quantity: 1, Price: amount, TotalPrice: amount}},
		TotalAmount: amount,
		Status:      status,
	}
	require.NoError(t, store.Create(context.Background(), order))
	return order
}

func TestOrderListing(t *testing.T) {
	store := storetest.NewOrders()
	svc := NewOrderService(store, zap.NewNop())
	ctx := context.Background()

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	seedOrder(t, store, alice, models.OrderStatusCompleted, 2.50)
	seedOrder(t, store, bob, models.OrderStatusCompleted, 4.00)
	latest := seedOrder(t, store, alice, models.OrderStatusPending, 1.25)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, latest.ID, all[0].ID, "newest first")

	mine, err := svc.ListByUser(ctx, alice.Hex())
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, alice, o.UserID)
	}
}

func TestGetOrder(t *testing.T) {
	store := storetest.NewOrders()
	svc := NewOrderService(store, zap.NewNop())
	ctx := context.Background()

	order := seedOrder(t, store, primitive.NewObjectID(), models.OrderStatusCompleted, 2.50)

	found, err := svc.Get(ctx, order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Get(ctx, "garbage")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateOrderStatus(t *testing.T) {
	store := storetest.NewOrders()
	svc := NewOrderService(store, zap.NewNop())
	ctx := context.Background()

	order := seedOrder(t, store, primitive.NewObjectID(), models.OrderStatusPending, 2.50)

	updated, err := svc.UpdateStatus(ctx, order.ID.Hex(), models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID.Hex(), "shipped")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.UpdateStatus(ctx, primitive.NewObjectID().Hex(), models.OrderStatusCompleted)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderStats(t *testing.T) {
	store := storetest.NewOrders()
	svc := NewOrderService(store, zap.NewNop())
	ctx := context.Background()

	userID := primitive.NewObjectID()
	seedOrder(t, store, userID, models.OrderStatusCompleted, 2.50)
	seedOrder(t, store, userID, models.OrderStatusCompleted, 4.00)
	seedOrder(t, store, userID, models.OrderStatusPending, 1.00)
	seedOrder(t, store, userID, models.OrderStatusCancelled, 3.00)

	result, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Stats.TotalOrders)
	assert.Equal(t, int64(2), result.Stats.CompletedOrders)
	assert.Equal(t, int64(1), result.Stats.PendingOrders)
	assert.Equal(t, int64(1), result.Stats.CancelledOrders)
	assert.Equal(t, 6.50, result.Stats.TotalRevenue, "revenue counts completed orders only")
	assert.Len(t, result.RecentOrders, 4)
}

func TestOrderStatsRecentLimit(t *testing.T) {
	store := storetest.NewOrders()
	svc := NewOrderService(store, zap.NewNop())
	ctx := context.Background()

	userID := primitive.NewObjectID()
	for i := 0; i < 15; i++ {
		seedOrder(t, store, userID, models.OrderStatusCompleted, 1.00)
	}

	result, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Len(t, result.RecentOrders, 10)
}
