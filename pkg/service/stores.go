package service

import (
	"context"

	"github.com/example/sweetshop/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces cover exactly what the services consume. The Mongo
// repositories satisfy them in production; tests use in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
	Stats(ctx context.Context) (*models.UserStats, error)
}

type SweetStore interface {
	Create(ctx context.Context, sweet *models.Sweet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sweet, error)
	List(ctx context.Context, filter models.SweetFilter) ([]*models.Sweet, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.SweetUpdate, imageURL string) (*models.Sweet, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DecrementQuantity(ctx context.Context, id primitive.ObjectID, n int) (*models.Sweet, error)
	IncrementQuantity(ctx context.Context, id primitive.ObjectID, n int) (*models.Sweet, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)
	ListRecent(ctx context.Context, limit int64) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	Stats(ctx context.Context) (*models.OrderStats, error)
}
