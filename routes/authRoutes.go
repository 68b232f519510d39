package routes

import (
	"net/http"

	controller "github.com/Zeralyxx/BicutanBites-Admin/controllers"

	"github.com/gorilla/mux"
)

func PublicRoutes(router *mux.Router) {
	router.HandleFunc("/auth/login", controller.Login).Methods(http.MethodPost)
}

func AuthProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/auth/logout", controller.Logout).Methods(http.MethodPost)
}
