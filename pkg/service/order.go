package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/sweetshop/pkg/apperr"
	"github.com/example/sweetshop/pkg/models"
	"github.com/example/sweetshop/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const recentOrdersLimit = 10

type OrderService struct {
	orders OrderStore
	logger *zap.Logger
}

// OrderStatsResult is the admin dashboard payload: aggregate counts
// plus the most recent orders.
type OrderStatsResult struct {
	Stats        *models.OrderStats `json:"stats"`
	RecentOrders []*models.Order    `json:"recentOrders"`
}

func NewOrderService(orders OrderStore, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, logger: logger}
}

func (s *OrderService) ListAll(ctx context.Context) ([]*models.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}
	return s.orders.ListByUser(ctx, uid)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("order not found")
	}

	order, err := s.orders.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperr.Validation("invalid status")
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("order not found")
	}

	order, err := s.orders.UpdateStatus(ctx, oid, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.logger.Info("Order status updated",
		zap.String("id", id),
		zap.String("status", status))

	return order, nil
}

func (s *OrderService) Stats(ctx context.Context) (*OrderStatsResult, error) {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate order stats: %w", err)
	}

	recent, err := s.orders.ListRecent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}

	return &OrderStatsResult{Stats: stats, RecentOrders: recent}, nil
}
