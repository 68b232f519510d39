package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine is a denormalized {name, qty} pair. The name is a copy taken at
// order time, not a reference, so menu edits never touch historical orders.
type OrderLine struct {
	Name string `bson:"name" json:"name"`
	Qty  int64  `bson:"qty" json:"qty"`
}

// Order documents are created by the customer-facing client; this service
// only reads them and writes status transitions. The stored user reference
// field is spelled "userID" in the collection.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Order_id      string             `bson:"-" json:"order_id"`
	User_id       string             `bson:"userID" json:"user_id"`
	Status        OrderStatus        `bson:"status" json:"status"`
	Total         float64            `bson:"total" json:"total"`
	Ordered_at    time.Time          `bson:"orderedAt" json:"ordered_at"`
	Note          *string            `bson:"note,omitempty" json:"note,omitempty"`
	PaymentMethod string             `bson:"paymentMethod" json:"payment_method"`
	Items         []OrderLine        `bson:"items" json:"items"`

	// Resolved from the users collection for display and search only,
	// never written back to the store.
	CustomerName    string `bson:"-" json:"customer_name,omitempty"`
	CustomerAddress string `bson:"-" json:"customer_address,omitempty"`
	CustomerContact string `bson:"-" json:"customer_contact,omitempty"`
}
