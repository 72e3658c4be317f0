package repository

import (
	"context"
	"errors"
	"time"

	"github.com/example/sweetshop/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	order.CreatedAt = time.Now()
	if order.OrderDate.IsZero() {
		order.OrderDate = order.CreatedAt
	}

	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*models.Order, error) {
	return r.list(ctx, bson.M{}, 0)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	return r.list(ctx, bson.M{"user_id": userID}, 0)
}

// ListRecent returns the limit most recent orders.
func (r *OrderRepository) ListRecent(ctx context.Context, limit int64) ([]*models.Order, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M, limit int64) ([]*models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []*models.Order
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": status}}

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Stats aggregates order counts per status and completed revenue.
func (r *OrderRepository) Stats(ctx context.Context) (*models.OrderStats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	completed, err := r.collection.CountDocuments(ctx, bson.M{"status": models.OrderStatusCompleted})
	if err != nil {
		return nil, err
	}
	pending, err := r.collection.CountDocuments(ctx, bson.M{"status": models.OrderStatusPending})
	if err != nil {
		return nil, err
	}
	cancelled, err := r.collection.CountDocuments(ctx, bson.M{"status": models.OrderStatusCancelled})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.OrderStatusCompleted}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var revenue float64
	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) > 0 {
		if sum, ok := results[0]["total"].(float64); ok {
			revenue = sum
		}
	}

	return &models.OrderStats{
		TotalOrders:     total,
		CompletedOrders: completed,
		PendingOrders:   pending,
		CancelledOrders: cancelled,
		TotalRevenue:    revenue,
	}, nil
}
