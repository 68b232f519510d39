package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/Zeralyxx/BicutanBites-Admin/config"
	"github.com/Zeralyxx/BicutanBites-Admin/models"
	"github.com/Zeralyxx/BicutanBites-Admin/views"
)

var menuItemCollection *mongo.Collection = database.OpenCollection(database.Client, "menu_items")
var validate = validator.New()

func fetchAllMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := menuItemCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Item_id == "" {
			items[i].Item_id = items[i].ID.Hex()
		}
	}
	return items, nil
}

// GetMenuItems lists menu items. The category and search query params are
// applied in memory over the full fetched list, category first.
func GetMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	master, err := fetchAllMenuItems(ctx)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu items"}`, http.StatusInternalServerError)
		return
	}

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")
	displayed := views.FilterMenu(master, category, search)

	response := map[string]interface{}{
		"success":    true,
		"message":    "Menu items retrieved successfully",
		"data":       displayed,
		"categories": views.MenuCategories(master),
		"counts": map[string]interface{}{
			"total":   len(master),
			"visible": len(displayed),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetMenuItem returns a single menu item by id.
func GetMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	itemId := mux.Vars(r)["item_id"]

	var item models.MenuItem
	if err := menuItemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&item); err != nil {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}

// CreateMenuItem validates the admin form and inserts the item. Validation
// failures abort before anything is written.
func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(item); validationErr != nil {
		http.Error(w, `{"success": false, "message": "Please fill in all required fields"}`, http.StatusBadRequest)
		return
	}

	if item.Available == nil {
		available := true
		item.Available = &available
	}

	item.ID = primitive.NewObjectID()
	item.Item_id = item.ID.Hex()

	if _, err := menuItemCollection.InsertOne(ctx, item); err != nil {
		http.Error(w, `{"success": false, "message": "Menu item could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Item added successfully",
		"data":    item,
	})
}

// UpdateMenuItem performs the full-field update the edit form submits.
func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	itemId := mux.Vars(r)["item_id"]

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if item.Name == nil || *item.Name == "" || item.Price == nil {
		http.Error(w, `{"success": false, "message": "Name and Price are required"}`, http.StatusBadRequest)
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"category":    item.Category,
		"imageUrl":    item.ImageUrl,
		"available":   item.Available,
	}}

	result, err := menuItemCollection.UpdateOne(ctx, bson.M{"item_id": itemId}, update)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Update failed"}`, http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	var updated models.MenuItem
	if err := menuItemCollection.FindOne(ctx, bson.M{"item_id": itemId}).Decode(&updated); err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving updated menu item"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Item updated",
		"data":    updated,
	})
}

// DeleteMenuItem removes the item outright; there is no soft delete.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	itemId := mux.Vars(r)["item_id"]

	result, err := menuItemCollection.DeleteOne(ctx, bson.M{"item_id": itemId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting item"}`, http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Item deleted",
	})
}
