package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/example/sweetshop/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInsufficientStock is returned by DecrementQuantity when the
// conditional update matched no document but the sweet exists.
var ErrInsufficientStock = errors.New("insufficient stock")

type SweetRepository struct {
	collection *mongo.Collection
}

func (r *SweetRepository) Create(ctx context.Context, sweet *models.Sweet) error {
	now := time.Now()
	sweet.CreatedAt = now
	sweet.UpdatedAt = now

	res, err := r.collection.InsertOne(ctx, sweet)
	if err != nil {
		return err
	}
	sweet.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sweet, error) {
	var sweet models.Sweet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

// List returns sweets matching the filter, newest first.
func (r *SweetRepository) List(ctx context.Context, filter models.SweetFilter) ([]*models.Sweet, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = bson.M{"$regex": regexp.QuoteMeta(filter.Category), "$options": "i"}
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sweets []*models.Sweet
	if err = cursor.All(ctx, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

// Update applies the non-nil fields and returns the updated document.
func (r *SweetRepository) Update(ctx context.Context, id primitive.ObjectID, update models.SweetUpdate, imageURL string) (*models.Sweet, error) {
	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if imageURL != "" {
		set["image_url"] = imageURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sweet models.Sweet
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&sweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *SweetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementQuantity atomically takes n units off the shelf. The filter
// requires quantity >= n, so the check and the decrement are a single
// server-side operation and stock can never go negative. Distinguishes
// a missing sweet from a lost race by re-reading on miss.
func (r *SweetRepository) DecrementQuantity(ctx context.Context, id primitive.ObjectID, n int) (*models.Sweet, error) {
	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": n}}
	update := bson.M{
		"$inc": bson.M{"quantity": -n},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sweet models.Sweet
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, ferr := r.FindByID(ctx, id); ferr != nil {
			return nil, ferr
		}
		return nil, ErrInsufficientStock
	}
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

// IncrementQuantity adds n units; used by restock and by the purchase
// compensation path when the order insert fails.
func (r *SweetRepository) IncrementQuantity(ctx context.Context, id primitive.ObjectID, n int) (*models.Sweet, error) {
	update := bson.M{
		"$inc": bson.M{"quantity": n},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sweet models.Sweet
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&sweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}
