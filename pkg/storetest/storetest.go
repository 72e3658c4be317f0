// Package storetest provides in-memory store implementations for
// tests. They honor the same contracts as the Mongo repositories, in
// particular the conditional decrement that keeps purchases from
// overselling.
package storetest

import (
	"context"
	"strings"
	"sync"

	"github.com/example/sweetshop/pkg/models"
	"github.com/example/sweetshop/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Users struct {
	mu    sync.Mutex
	users []*models.User
}

func NewUsers() *Users { return &Users{} }

func (s *Users) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	clone.ID = primitive.NewObjectID()
	s.users = append(s.users, &clone)
	user.ID = clone.ID
	return nil
}

func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) FindByEmailOrUsername(_ context.Context, email, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Users) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			u.Password = passwordHash
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Users) Stats(_ context.Context) (*models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.UserStats{TotalUsers: int64(len(s.users))}
	for _, u := range s.users {
		if u.Role == models.RoleAdmin {
			stats.AdminUsers++
		} else {
			stats.RegularUsers++
		}
	}
	return stats, nil
}

type Sweets struct {
	mu     sync.Mutex
	sweets []*models.Sweet
}

func NewSweets() *Sweets { return &Sweets{} }

func (s *Sweets) Create(_ context.Context, sweet *models.Sweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sweet
	clone.ID = primitive.NewObjectID()
	s.sweets = append(s.sweets, &clone)
	sweet.ID = clone.ID
	return nil
}

func (s *Sweets) FindByID(_ context.Context, id primitive.ObjectID) (*models.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet := s.find(id)
	if sweet == nil {
		return nil, repository.ErrNotFound
	}
	clone := *sweet
	return &clone, nil
}

func (s *Sweets) List(_ context.Context, filter models.SweetFilter) ([]*models.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first: reverse of insertion order.
	var out []*models.Sweet
	for i := len(s.sweets) - 1; i >= 0; i-- {
		sw := s.sweets[i]
		if !matches(sw, filter) {
			continue
		}
		clone := *sw
		out = append(out, &clone)
	}
	return out, nil
}

func (s *Sweets) Update(_ context.Context, id primitive.ObjectID, update models.SweetUpdate, imageURL string) (*models.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet := s.find(id)
	if sweet == nil {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		sweet.Name = *update.Name
	}
	if update.Category != nil {
		sweet.Category = *update.Category
	}
	if update.Price != nil {
		sweet.Price = *update.Price
	}
	if update.Quantity != nil {
		sweet.Quantity = *update.Quantity
	}
	if update.Description != nil {
		sweet.Description = *update.Description
	}
	if imageURL != "" {
		sweet.ImageURL = imageURL
	}
	clone := *sweet
	return &clone, nil
}

func (s *Sweets) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sw := range s.sweets {
		if sw.ID == id {
			s.sweets = append(s.sweets[:i], s.sweets[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *Sweets) DecrementQuantity(_ context.Context, id primitive.ObjectID, n int) (*models.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet := s.find(id)
	if sweet == nil {
		return nil, repository.ErrNotFound
	}
	if sweet.Quantity < n {
		return nil, repository.ErrInsufficientStock
	}
	sweet.Quantity -= n
	clone := *sweet
	return &clone, nil
}

func (s *Sweets) IncrementQuantity(_ context.Context, id primitive.ObjectID, n int) (*models.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet := s.find(id)
	if sweet == nil {
		return nil, repository.ErrNotFound
	}
	sweet.Quantity += n
	clone := *sweet
	return &clone, nil
}

func (s *Sweets) find(id primitive.ObjectID) *models.Sweet {
	for _, sw := range s.sweets {
		if sw.ID == id {
			return sw
		}
	}
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matches(sw *models.Sweet, filter models.SweetFilter) bool {
	if filter.Name != "" && !containsFold(sw.Name, filter.Name) {
		return false
	}
	if filter.Category != "" && !containsFold(sw.Category, filter.Category) {
		return false
	}
	if filter.MinPrice != nil && sw.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && sw.Price > *filter.MaxPrice {
		return false
	}
	return true
}

type Orders struct {
	mu     sync.Mutex
	orders []*models.Order
	// FailCreate forces Create to error, for compensation tests.
	FailCreate error
}

func NewOrders() *Orders { return &Orders{} }

func (s *Orders) Create(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCreate != nil {
		return s.FailCreate
	}
	clone := *order
	clone.ID = primitive.NewObjectID()
	s.orders = append(s.orders, &clone)
	order.ID = clone.ID
	return nil
}

func (s *Orders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Orders) ListAll(_ context.Context) ([]*models.Order, error) {
	return s.listWhere(func(*models.Order) bool { return true }, 0), nil
}

func (s *Orders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	return s.listWhere(func(o *models.Order) bool { return o.UserID == userID }, 0), nil
}

func (s *Orders) ListRecent(_ context.Context, limit int64) ([]*models.Order, error) {
	return s.listWhere(func(*models.Order) bool { return true }, int(limit)), nil
}

func (s *Orders) listWhere(pred func(*models.Order) bool, limit int) []*models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if pred(s.orders[i]) {
			clone := *s.orders[i]
			out = append(out, &clone)
		}
	}
	return out
}

func (s *Orders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			o.Status = status
			clone := *o
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Orders) Stats(_ context.Context) (*models.OrderStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.OrderStats{TotalOrders: int64(len(s.orders))}
	for _, o := range s.orders {
		switch o.Status {
		case models.OrderStatusCompleted:
			stats.CompletedOrders++
			stats.TotalRevenue += o.TotalAmount
		case models.OrderStatusPending:
			stats.PendingOrders++
		case models.OrderStatusCancelled:
			stats.CancelledOrders++
		}
	}
	return stats, nil
}
