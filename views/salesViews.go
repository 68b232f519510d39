package views

import (
	"sort"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

// SalesSummary is the fold over a set of orders shown on the sales screen.
type SalesSummary struct {
	Revenue         float64 `json:"revenue"`
	OrderCount      int     `json:"order_count"`
	ItemsSold       int64   `json:"items_sold"`
	UniqueCustomers int     `json:"unique_customers"`
}

// Summarize folds orders into total revenue, order count, items-sold count
// and distinct customer count. Orders of every status are counted.
func Summarize(orders []models.Order) SalesSummary {
	summary := SalesSummary{}
	customers := map[string]struct{}{}

	for _, order := range orders {
		summary.Revenue += order.Total
		summary.OrderCount++
		if order.User_id != "" {
			customers[order.User_id] = struct{}{}
		}
		for _, line := range order.Items {
			summary.ItemsSold += line.Qty
		}
	}

	summary.UniqueCustomers = len(customers)
	return summary
}

// CustomerStat aggregates one customer's orders for the spend ranking.
type CustomerStat struct {
	User_id    string  `json:"user_id"`
	Name       string  `json:"name,omitempty"`
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

// TopCustomers ranks customers by total spend, descending. Ties keep the
// order in which a customer was first seen.
func TopCustomers(orders []models.Order) []CustomerStat {
	index := map[string]int{}
	stats := []CustomerStat{}

	for _, order := range orders {
		if order.User_id == "" {
			continue
		}
		i, seen := index[order.User_id]
		if !seen {
			i = len(stats)
			index[order.User_id] = i
			stats = append(stats, CustomerStat{User_id: order.User_id})
		}
		stats[i].OrderCount++
		stats[i].TotalSpent += order.Total
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})
	return stats
}

// ItemStat aggregates one item's sold quantity for the top-items ranking.
type ItemStat struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	ImageUrl string `json:"image_url,omitempty"`
}

// TopItems ranks item names by total quantity sold, descending. Ties keep
// the order in which an item was first seen.
func TopItems(orders []models.Order) []ItemStat {
	index := map[string]int{}
	stats := []ItemStat{}

	for _, order := range orders {
		for _, line := range order.Items {
			i, seen := index[line.Name]
			if !seen {
				i = len(stats)
				index[line.Name] = i
				stats = append(stats, ItemStat{Name: line.Name})
			}
			stats[i].Quantity += line.Qty
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	return stats
}
