package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/sweetshop/pkg/apperr"
	"github.com/example/sweetshop/pkg/catalog"
	"github.com/example/sweetshop/pkg/models"
	"github.com/example/sweetshop/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type InventoryService struct {
	sweets SweetStore
	users  UserStore
	orders OrderStore
	logger *zap.Logger
}

// PurchaseResult carries the post-purchase sweet together with a
// summary of the order written for it.
type PurchaseResult struct {
	Sweet             *models.Sweet `json:"sweet"`
	PurchasedQuantity int           `json:"purchasedQuantity"`
	Order             OrderSummary  `json:"order"`
}

type OrderSummary struct {
	ID          string    `json:"id"`
	TotalAmount float64   `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
}

func NewInventoryService(sweets SweetStore, users UserStore, orders OrderStore, logger *zap.Logger) *InventoryService {
	return &InventoryService{sweets: sweets, users: users, orders: orders, logger: logger}
}

func (s *InventoryService) Add(ctx context.Context, name, category string, price float64, quantity int, description string) (*models.Sweet, error) {
	if name == "" || category == "" {
		return nil, apperr.Validation("name, category, price, and quantity are required")
	}
	if price < 0 || quantity < 0 {
		return nil, apperr.Validation("price and quantity must be non-negative")
	}

	sweet := &models.Sweet{
		Name:        name,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
		Description: description,
		ImageURL:    catalog.ImageURL(category),
	}
	if err := s.sweets.Create(ctx, sweet); err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}

	s.logger.Info("Sweet added",
		zap.String("id", sweet.ID.Hex()),
		zap.String("name", name),
		zap.String("category", category))

	return sweet, nil
}

func (s *InventoryService) List(ctx context.Context) ([]*models.Sweet, error) {
	return s.sweets.List(ctx, models.SweetFilter{})
}

func (s *InventoryService) Search(ctx context.Context, filter models.SweetFilter) ([]*models.Sweet, error) {
	return s.sweets.List(ctx, filter)
}

func (s *InventoryService) Update(ctx context.Context, id string, update models.SweetUpdate) (*models.Sweet, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if update.Price != nil && *update.Price < 0 {
		return nil, apperr.Validation("price must be non-negative")
	}
	if update.Quantity != nil && *update.Quantity < 0 {
		return nil, apperr.Validation("quantity must be non-negative")
	}

	// A category change picks up that category's placeholder image.
	imageURL := ""
	if update.Category != nil && *update.Category != "" {
		imageURL = catalog.ImageURL(*update.Category)
	}

	sweet, err := s.sweets.Update(ctx, oid, update, imageURL)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("sweet not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update sweet: %w", err)
	}
	return sweet, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	err = s.sweets.Delete(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("sweet not found")
	}
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}

	s.logger.Info("Sweet deleted", zap.String("id", id))
	return nil
}

// Purchase decrements stock and writes a completed order as one
// logical transaction. The decrement is conditional at the store, so a
// concurrent purchase that would oversell loses cleanly; an order
// insert failure puts the units back.
func (s *InventoryService) Purchase(ctx context.Context, id, userID string, quantity int) (*PurchaseResult, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	user, err := s.users.FindByID(ctx, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	sweet, err := s.sweets.DecrementQuantity(ctx, oid, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("sweet not found")
	}
	if errors.Is(err, repository.ErrInsufficientStock) {
		available := 0
		if current, ferr := s.sweets.FindByID(ctx, oid); ferr == nil {
			available = current.Quantity
		}
		return nil, apperr.Conflict("insufficient stock").
			WithDetails(map[string]interface{}{"available": available})
	}
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	totalPrice := sweet.Price * float64(quantity)
	order := &models.Order{
		UserID: uid,
		Items: []models.OrderItem{{
			SweetID:    sweet.ID,
			SweetName:  sweet.Name,
			Quantity:   quantity,
			Price:      sweet.Price,
			TotalPrice: totalPrice,
		}},
		TotalAmount:      totalPrice,
		Status:           models.OrderStatusCompleted,
		CustomerEmail:    user.Email,
		CustomerUsername: user.Username,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		// Put the stock back so no purchase is half applied.
		if _, rerr := s.sweets.IncrementQuantity(ctx, oid, quantity); rerr != nil {
			s.logger.Error("Failed to restore stock after order failure",
				zap.String("sweet_id", id),
				zap.Int("quantity", quantity),
				zap.Error(rerr))
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("Purchase completed",
		zap.String("sweet_id", id),
		zap.String("user_id", userID),
		zap.Int("quantity", quantity),
		zap.Float64("total", totalPrice))

	return &PurchaseResult{
		Sweet:             sweet,
		PurchasedQuantity: quantity,
		Order: OrderSummary{
			ID:          order.ID.Hex(),
			TotalAmount: order.TotalAmount,
			OrderDate:   order.OrderDate,
		},
	}, nil
}

func (s *InventoryService) Restock(ctx context.Context, id string, quantity int) (*models.Sweet, error) {
	if quantity <= 0 {
		return nil, apperr.Validation("quantity must be positive")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	sweet, err := s.sweets.IncrementQuantity(ctx, oid, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("sweet not found")
	}
	if err != nil {
		return nil, fmt.Errorf("restock sweet: %w", err)
	}

	s.logger.Info("Sweet restocked",
		zap.String("id", id),
		zap.Int("quantity", quantity))

	return sweet, nil
}

// Categories lists the known sweet categories with placeholder images.
func (s *InventoryService) Categories() []catalog.Category {
	return catalog.Categories()
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("sweet not found")
	}
	return oid, nil
}
