package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is an allow-list entry. Existence of a document for a user id is
// what authorizes that user; no other fields carry meaning.
type Admin struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	User_id string             `bson:"user_id" json:"user_id"`
}
