package repository

import (
	"context"
	"time"

	"github.com/example/sweetshop/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection  = "users"
	sweetsCollection = "sweets"
	ordersCollection = "orders"
)

type MongoRepository struct {
	client   *mongo.Client
	database *mongo.Database
	config   *config.MongoDBConfig
}

func NewMongoRepository(cfg *config.MongoDBConfig) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &MongoRepository{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
	}, nil
}

func (m *MongoRepository) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes registration depends on.
func (m *MongoRepository) EnsureIndexes(ctx context.Context) error {
	users := m.database.Collection(usersCollection)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (m *MongoRepository) Users() *UserRepository {
	return &UserRepository{collection: m.database.Collection(usersCollection)}
}

func (m *MongoRepository) Sweets() *SweetRepository {
	return &SweetRepository{collection: m.database.Collection(sweetsCollection)}
}

func (m *MongoRepository) Orders() *OrderRepository {
	return &OrderRepository{collection: m.database.Collection(ordersCollection)}
}
