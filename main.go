package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	database "github.com/Zeralyxx/BicutanBites-Admin/config"
	middleware "github.com/Zeralyxx/BicutanBites-Admin/middlewares"
	"github.com/Zeralyxx/BicutanBites-Admin/routes"
)

func main() {
	// Load environment variables
	database.LoadEnv()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestID)

	// Public Routes (No Authentication)
	routes.PublicRoutes(router)

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.AuthProtectedRoutes(securedRoutes)
	routes.MenuProtectedRoutes(securedRoutes)
	routes.OrderProtectedRoutes(securedRoutes)
	routes.SalesProtectedRoutes(securedRoutes)

	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
