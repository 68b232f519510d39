package routes

import (
	"net/http"

	controller "github.com/Zeralyxx/BicutanBites-Admin/controllers"

	"github.com/gorilla/mux"
)

func SalesProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/sales/summary", controller.GetSalesSummary).Methods(http.MethodGet)
	router.HandleFunc("/sales/customers", controller.GetSalesCustomers).Methods(http.MethodGet)
	router.HandleFunc("/sales/top-items", controller.GetSalesTopItems).Methods(http.MethodGet)
	router.HandleFunc("/sales/orders", controller.GetSalesOrders).Methods(http.MethodGet)
	router.HandleFunc("/sales/export", controller.ExportSalesReport).Methods(http.MethodGet)
}
