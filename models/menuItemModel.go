package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Item_id     string             `bson:"item_id" json:"id"`
	Name        *string            `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description *string            `bson:"description" json:"description"`
	Price       *float64           `bson:"price" json:"price" validate:"required,gte=0"`
	Category    *string            `bson:"category" json:"category"`
	ImageUrl    *string            `bson:"imageUrl" json:"image_url"`
	Available   *bool              `bson:"available" json:"available"`
}
