package routes

import (
	"net/http"

	controller "github.com/Zeralyxx/BicutanBites-Admin/controllers"

	"github.com/gorilla/mux"
)

func MenuProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/menu-items", controller.GetMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/menu-items", controller.CreateMenuItem).Methods(http.MethodPost)

	router.HandleFunc("/menu-items/{item_id}", controller.GetMenuItem).Methods(http.MethodGet)
	router.HandleFunc("/menu-items/{item_id}", controller.UpdateMenuItem).Methods(http.MethodPatch)
	router.HandleFunc("/menu-items/{item_id}", controller.DeleteMenuItem).Methods(http.MethodDelete)
}
