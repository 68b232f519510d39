package notifier

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

// MongoSource backs the dispatcher with the live orders and users
// collections. Missing documents come back as nil, nil so the dispatcher
// can tell "not found" apart from a real failure.
type MongoSource struct {
	Orders *mongo.Collection
	Users  *mongo.Collection
}

func NewMongoSource(orders, users *mongo.Collection) *MongoSource {
	return &MongoSource{Orders: orders, Users: users}
}

func (s *MongoSource) OrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, nil
	}

	var order models.Order
	err = s.Orders.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	order.Order_id = order.ID.Hex()
	return &order, nil
}

func (s *MongoSource) UserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.Users.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
