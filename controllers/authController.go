package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	database "github.com/Zeralyxx/BicutanBites-Admin/config"
	"github.com/Zeralyxx/BicutanBites-Admin/helper"
	middleware "github.com/Zeralyxx/BicutanBites-Admin/middlewares"
	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "users")
var adminCollection *mongo.Collection = database.OpenCollection(database.Client, "admins")

type loginDecision struct {
	StatusCode int
	Message    string
	// Revoke means any stored session tokens must be cleared: the user
	// authenticated but is not on the admin allow-list, so they must end
	// up signed out, not merely turned away.
	Revoke bool
}

// decideLogin maps the credential check and the allow-list check onto the
// response. Invalid credentials and denied access are distinct outcomes.
func decideLogin(credentialsOK, isAdmin bool) loginDecision {
	if !credentialsOK {
		return loginDecision{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password."}
	}
	if !isAdmin {
		return loginDecision{StatusCode: http.StatusForbidden, Message: "Access Denied", Revoke: true}
	}
	return loginDecision{StatusCode: http.StatusOK}
}

// Login authenticates email/password against the users collection, then
// gates on the admins allow-list. A valid user without an admins document
// gets "Access Denied" and no usable session.
func Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if credentials.Email == "" || credentials.Password == "" {
		http.Error(w, `{"success": false, "message": "Email and password are required"}`, http.StatusBadRequest)
		return
	}

	var foundUser models.User
	err := userCollection.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&foundUser)
	credentialsOK := err == nil && foundUser.Password != nil &&
		bcrypt.CompareHashAndPassword([]byte(*foundUser.Password), []byte(credentials.Password)) == nil

	isAdmin := false
	if credentialsOK {
		count, countErr := adminCollection.CountDocuments(ctx, bson.M{"user_id": foundUser.User_id})
		if countErr != nil {
			http.Error(w, `{"success": false, "message": "Error checking admin access"}`, http.StatusInternalServerError)
			return
		}
		isAdmin = count > 0
	}

	decision := decideLogin(credentialsOK, isAdmin)
	if decision.Revoke {
		if err := helper.ClearAllTokens(foundUser.User_id); err != nil {
			helper.Logger.WithError(err).Warn("failed to clear tokens on denied login")
		}
		helper.Logger.WithFields(logrus.Fields{
			"user_id": foundUser.User_id,
		}).Warn("login denied: not on admin allow-list")
	}
	if decision.StatusCode != http.StatusOK {
		http.Error(w, `{"success": false, "message": "`+decision.Message+`"}`, decision.StatusCode)
		return
	}

	name := ""
	if foundUser.Name != nil {
		name = *foundUser.Name
	}
	token, refreshToken, err := helper.GenerateAllTokens(credentials.Email, name, foundUser.User_id)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Could not create session"}`, http.StatusInternalServerError)
		return
	}
	if err := helper.UpdateAllTokens(token, refreshToken, foundUser.User_id); err != nil {
		http.Error(w, `{"success": false, "message": "Could not create session"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Login Successful",
		"data": map[string]interface{}{
			"user_id":       foundUser.User_id,
			"name":          name,
			"email":         credentials.Email,
			"token":         token,
			"refresh_token": refreshToken,
		},
	})
}

// Logout clears the caller's stored tokens.
func Logout(w http.ResponseWriter, r *http.Request) {
	_, _, uid := middleware.GetUserFromContext(r)
	if uid == "" {
		http.Error(w, `{"success": false, "message": "Not signed in"}`, http.StatusUnauthorized)
		return
	}

	if err := helper.ClearAllTokens(uid); err != nil {
		http.Error(w, `{"success": false, "message": "Logout failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}
