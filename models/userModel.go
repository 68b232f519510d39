package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User documents are owned by the customer-facing app; this service reads
// them for order enrichment and push routing. An absent
// receiveOrderNotifications field counts as opted in.
type User struct {
	ID                        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	User_id                   string             `bson:"user_id" json:"user_id"`
	Name                      *string            `bson:"name" json:"name"`
	Address                   *string            `bson:"address" json:"address"`
	PhoneNumber               *string            `bson:"phoneNumber" json:"phone_number"`
	Email                     *string            `bson:"email" json:"email" validate:"required,email"`
	Password                  *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	FcmToken                  *string            `bson:"fcmToken" json:"-"`
	ReceiveOrderNotifications *bool              `bson:"receiveOrderNotifications" json:"-"`
	Token                     *string            `bson:"token" json:"token,omitempty"`
	Refresh_Token             *string            `bson:"refresh_token" json:"refresh_token,omitempty"`
}
