package routes

import (
	"net/http"

	controller "github.com/Zeralyxx/BicutanBites-Admin/controllers"

	"github.com/gorilla/mux"
)

func OrderProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/orders", controller.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/history", controller.GetOrderHistory).Methods(http.MethodGet)
	router.HandleFunc("/orders/feed", controller.OrderFeed).Methods(http.MethodGet)

	router.HandleFunc("/orders/{order_id}", controller.GetOrderById).Methods(http.MethodGet)
	router.HandleFunc("/orders/{order_id}/status", controller.UpdateOrderStatus).Methods(http.MethodPatch)
}
