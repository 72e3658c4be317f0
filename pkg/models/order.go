package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"user_id" json:"userId"`
	Items            []OrderItem        `bson:"items" json:"items"`
	TotalAmount      float64            `bson:"total_amount" json:"totalAmount"`
	Status           string             `bson:"status" json:"status"`
	OrderDate        time.Time          `bson:"order_date" json:"orderDate"`
	CustomerEmail    string             `bson:"customer_email" json:"customerEmail"`
	CustomerUsername string             `bson:"customer_username" json:"customerUsername"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// OrderItem snapshots a sweet at purchase time; later price or name
// changes do not touch historical orders.
type OrderItem struct {
	SweetID    primitive.ObjectID `bson:"sweet_id" json:"sweetId"`
	SweetName  string             `bson:"sweet_name" json:"sweetName"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	TotalPrice float64            `bson:"total_price" json:"totalPrice"`
}

type OrderStats struct {
	TotalOrders     int64   `json:"totalOrders"`
	CompletedOrders int64   `json:"completedOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	CancelledOrders int64   `json:"cancelledOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}
