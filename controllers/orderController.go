package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/Zeralyxx/BicutanBites-Admin/config"
	"github.com/Zeralyxx/BicutanBites-Admin/helper"
	"github.com/Zeralyxx/BicutanBites-Admin/models"
	"github.com/Zeralyxx/BicutanBites-Admin/notifier"
	"github.com/Zeralyxx/BicutanBites-Admin/views"
)

var orderCollection *mongo.Collection = database.OpenCollection(database.Client, "orders")

var pushDispatcher = newPushDispatcher()

func newPushDispatcher() *notifier.Dispatcher {
	source := notifier.NewMongoSource(orderCollection, userCollection)
	return notifier.NewDispatcher(source, source, os.Getenv("FCM_ENDPOINT"), os.Getenv("FCM_SERVER_KEY"), helper.Logger)
}

// lookupUser resolves a user document for order enrichment. Missing users
// come back as nil, nil so callers degrade to placeholder text.
func lookupUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func fetchOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := orderCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "orderedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Order_id = orders[i].ID.Hex()
	}
	return orders, nil
}

func fetchActiveOrders(ctx context.Context) ([]models.Order, error) {
	filter := bson.M{"status": bson.M{"$nin": []string{
		string(models.StatusCompleted),
		string(models.StatusCancelled),
	}}}
	orders, err := fetchOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	views.ResolveCustomers(ctx, orders, lookupUser)
	return orders, nil
}

// GetOrders lists active orders, newest first, with customer details
// resolved in one batch before the response is written. The status and
// search params filter the fetched list in memory, status first.
func GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	master, err := fetchActiveOrders(ctx)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving orders"}`, http.StatusInternalServerError)
		return
	}

	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")
	displayed := views.FilterOrders(master, status, search)

	response := map[string]interface{}{
		"success": true,
		"message": "Orders retrieved successfully",
		"data":    displayed,
		"counts":  views.CountByStatus(master),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetOrderHistory lists Completed and Cancelled orders only.
func GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$in": []string{
		string(models.StatusCompleted),
		string(models.StatusCancelled),
	}}}
	orders, err := fetchOrders(ctx, filter)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error loading history"}`, http.StatusInternalServerError)
		return
	}
	views.ResolveCustomers(ctx, orders, lookupUser)

	displayed := views.FilterOrders(orders, views.FilterAll, r.URL.Query().Get("search"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Order history retrieved successfully",
		"data":    displayed,
	})
}

// GetOrderById returns one order with customer details resolved.
func GetOrderById(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	orderId := mux.Vars(r)["order_id"]
	objectID, err := primitive.ObjectIDFromHex(orderId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid order ID"}`, http.StatusBadRequest)
		return
	}

	var order models.Order
	err = orderCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		http.Error(w, `{"success": false, "message": "Order not found"}`, http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving order"}`, http.StatusInternalServerError)
		return
	}
	order.Order_id = order.ID.Hex()

	single := []models.Order{order}
	views.ResolveCustomers(ctx, single, lookupUser)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Order retrieved successfully",
		"data":    single[0],
	})
}

// UpdateOrderStatus writes the new status, then dispatches the push
// notification asynchronously. The write is the only guaranteed effect;
// dispatch failures are logged and swallowed.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	orderId := mux.Vars(r)["order_id"]
	objectID, err := primitive.ObjectIDFromHex(orderId)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid order ID"}`, http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	newStatus := models.OrderStatus(requestBody.Status)
	if !newStatus.Valid() {
		http.Error(w, `{"success": false, "message": "Invalid order status"}`, http.StatusBadRequest)
		return
	}

	update := bson.M{"$set": bson.M{"status": newStatus}}
	result, err := orderCollection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to update order status"}`, http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, `{"success": false, "message": "Order not found"}`, http.StatusNotFound)
		return
	}

	// Best-effort, fire-and-forget: the admin's request never waits on the
	// push gateway.
	go func(orderID string, status models.OrderStatus) {
		notifyCtx, notifyCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer notifyCancel()
		dispatchResult := pushDispatcher.NotifyStatusChange(notifyCtx, orderID, status)
		pushDispatcher.LogResult(orderID, status, dispatchResult)
	}(orderId, newStatus)

	helper.Logger.WithFields(logrus.Fields{
		"order_id": orderId,
		"status":   newStatus,
	}).Info("order status updated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Order Updated",
		"data": map[string]interface{}{
			"order_id": orderId,
			"status":   newStatus,
			"style":    newStatus.Style(),
		},
	})
}
