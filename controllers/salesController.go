package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tealeg/xlsx"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
	"github.com/Zeralyxx/BicutanBites-Admin/views"
)

// salesRange translates the range query param into a start time. A nil
// start means all time.
func salesRange(r *http.Request) (start *time.Time, label string) {
	now := time.Now()
	switch r.URL.Query().Get("range") {
	case "week":
		from := now.AddDate(0, 0, -7)
		return &from, "Last 7 Days"
	case "month":
		from := now.AddDate(0, -1, 0)
		return &from, "Last 30 Days"
	case "year":
		from := now.AddDate(-1, 0, 0)
		return &from, "Last Year"
	default:
		return nil, "All Time"
	}
}

// fetchOrdersInRange runs the one-shot ranged query the sales screens use;
// unlike the orders feed there is no subscription here.
func fetchOrdersInRange(ctx context.Context, start *time.Time) ([]models.Order, error) {
	filter := bson.M{}
	if start != nil {
		filter["orderedAt"] = bson.M{"$gte": *start, "$lte": time.Now()}
	}
	return fetchOrders(ctx, filter)
}

// GetSalesSummary folds the ranged orders into the headline numbers.
func GetSalesSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	start, label := salesRange(r)
	orders, err := fetchOrdersInRange(ctx, start)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to fetch data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Sales summary retrieved successfully",
		"range":   label,
		"data":    views.Summarize(orders),
	})
}

// GetSalesCustomers ranks customers by spend within the range, with names
// resolved for display.
func GetSalesCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	start, label := salesRange(r)
	orders, err := fetchOrdersInRange(ctx, start)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to fetch data"}`, http.StatusInternalServerError)
		return
	}

	stats := views.TopCustomers(orders)
	resolveCustomerNames(ctx, stats)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Top customers retrieved successfully",
		"range":   label,
		"data":    stats,
	})
}

func resolveCustomerNames(ctx context.Context, stats []views.CustomerStat) {
	for i := range stats {
		user, err := lookupUser(ctx, stats[i].User_id)
		if err != nil || user == nil || user.Name == nil || *user.Name == "" {
			stats[i].Name = "Unknown"
			continue
		}
		stats[i].Name = *user.Name
	}
}

// GetSalesTopItems ranks item names by quantity sold within the range and
// attaches menu image urls where the item still exists on the menu.
func GetSalesTopItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	start, label := salesRange(r)
	orders, err := fetchOrdersInRange(ctx, start)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to fetch data"}`, http.StatusInternalServerError)
		return
	}

	stats := views.TopItems(orders)
	attachItemImages(ctx, stats)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Top items retrieved successfully",
		"range":   label,
		"data":    stats,
	})
}

// attachItemImages fills image urls from the menu by item name. Items sold
// under a name no longer on the menu simply keep an empty url.
func attachItemImages(ctx context.Context, stats []views.ItemStat) {
	items, err := fetchAllMenuItems(ctx)
	if err != nil {
		return
	}

	imagesByName := make(map[string]string, len(items))
	for _, item := range items {
		if item.Name != nil && item.ImageUrl != nil {
			imagesByName[*item.Name] = *item.ImageUrl
		}
	}
	for i := range stats {
		stats[i].ImageUrl = imagesByName[stats[i].Name]
	}
}

// GetSalesOrders lists the historical (Completed/Cancelled) orders within
// the range, newest first, with customer details resolved.
func GetSalesOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	start, label := salesRange(r)
	orders, err := fetchOrdersInRange(ctx, start)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error loading history"}`, http.StatusInternalServerError)
		return
	}

	history := views.HistoryOnly(orders)
	views.ResolveCustomers(ctx, history, lookupUser)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Sales orders retrieved successfully",
		"range":   label,
		"data":    history,
	})
}

// ExportSalesReport writes the ranged summary and both rankings as an
// xlsx download.
func ExportSalesReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	start, label := salesRange(r)
	orders, err := fetchOrdersInRange(ctx, start)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to fetch data"}`, http.StatusInternalServerError)
		return
	}

	summary := views.Summarize(orders)
	customers := views.TopCustomers(orders)
	resolveCustomerNames(ctx, customers)
	items := views.TopItems(orders)

	file := xlsx.NewFile()

	summarySheet, err := file.AddSheet("Summary")
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to create report"}`, http.StatusInternalServerError)
		return
	}
	addRow(summarySheet, "Range", label)
	addRow(summarySheet, "Revenue", fmt.Sprintf("%.2f", summary.Revenue))
	addRow(summarySheet, "Orders", summary.OrderCount)
	addRow(summarySheet, "Items Sold", summary.ItemsSold)
	addRow(summarySheet, "Unique Customers", summary.UniqueCustomers)

	itemSheet, err := file.AddSheet("Top Items")
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to create report"}`, http.StatusInternalServerError)
		return
	}
	addRow(itemSheet, "Rank", "Item", "Quantity Sold")
	for i, item := range items {
		addRow(itemSheet, i+1, item.Name, item.Quantity)
	}

	customerSheet, err := file.AddSheet("Top Customers")
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to create report"}`, http.StatusInternalServerError)
		return
	}
	addRow(customerSheet, "Rank", "Customer", "Orders", "Total Spent")
	for i, customer := range customers {
		addRow(customerSheet, i+1, customer.Name, customer.OrderCount, fmt.Sprintf("%.2f", customer.TotalSpent))
	}

	w.Header().Set("Content-Disposition", "attachment; filename=sales_report.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(w); err != nil {
		http.Error(w, `{"success": false, "message": "Failed to write report"}`, http.StatusInternalServerError)
		return
	}
}

func addRow(sheet *xlsx.Sheet, values ...interface{}) {
	row := sheet.AddRow()
	for _, value := range values {
		row.AddCell().SetValue(value)
	}
}
