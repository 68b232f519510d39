package views

import (
	"context"
	"strings"
	"sync"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

// Placeholder text used when an order's user reference cannot be resolved.
// A dangling userID degrades to these values, never to an error.
const (
	PlaceholderNoUser       = "Guest / No User ID"
	PlaceholderUserNotFound = "User Not Found"
	PlaceholderUserError    = "Error Loading"
	PlaceholderNoAddress    = "No Address Provided"
	PlaceholderNoContact    = "No Contact Info"
	PlaceholderUnknownName  = "Unknown User"
)

// FilterOrders applies the status equality filter first, then the free-text
// search over order id, note and resolved customer name.
func FilterOrders(master []models.Order, status, search string) []models.Order {
	filtered := make([]models.Order, 0, len(master))

	byStatus := !strings.EqualFold(status, FilterAll) && status != ""
	for _, order := range master {
		if byStatus && !strings.EqualFold(string(order.Status), status) {
			continue
		}
		filtered = append(filtered, order)
	}

	if search == "" {
		return filtered
	}

	needle := strings.ToLower(search)
	matched := make([]models.Order, 0, len(filtered))
	for _, order := range filtered {
		id := strings.ToLower(order.Order_id)
		note := ""
		if order.Note != nil {
			note = strings.ToLower(*order.Note)
		}
		customer := strings.ToLower(order.CustomerName)
		if strings.Contains(id, needle) || strings.Contains(note, needle) || strings.Contains(customer, needle) {
			matched = append(matched, order)
		}
	}
	return matched
}

// StatusCounts holds the per-chip totals for the active orders screen.
type StatusCounts struct {
	All            int `json:"all"`
	Pending        int `json:"pending"`
	BeingMade      int `json:"being_made"`
	BeingDelivered int `json:"being_delivered"`
}

func CountByStatus(orders []models.Order) StatusCounts {
	counts := StatusCounts{All: len(orders)}
	for _, order := range orders {
		switch order.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusBeingMade:
			counts.BeingMade++
		case models.StatusBeingDelivered:
			counts.BeingDelivered++
		}
	}
	return counts
}

// HistoryOnly keeps orders whose status marks them as historical
// (Completed or Cancelled).
func HistoryOnly(orders []models.Order) []models.Order {
	history := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status.Historical() {
			history = append(history, order)
		}
	}
	return history
}

// UserLookup fetches a user document by id. A nil user with a nil error
// means the document does not exist.
type UserLookup func(ctx context.Context, userID string) (*models.User, error)

// ResolveCustomers enriches every order with the owning customer's display
// fields in one batched fan-out, waiting for all lookups before returning
// so callers refresh once instead of once per row. Lookup failures degrade
// to placeholder text.
func ResolveCustomers(ctx context.Context, orders []models.Order, lookup UserLookup) {
	var wg sync.WaitGroup
	for i := range orders {
		if orders[i].User_id == "" {
			orders[i].CustomerName = PlaceholderNoUser
			orders[i].CustomerAddress = PlaceholderNoAddress
			orders[i].CustomerContact = PlaceholderNoContact
			continue
		}

		wg.Add(1)
		go func(order *models.Order) {
			defer wg.Done()
			user, err := lookup(ctx, order.User_id)
			switch {
			case err != nil:
				order.CustomerName = PlaceholderUserError
			case user == nil:
				order.CustomerName = PlaceholderUserNotFound
			default:
				order.CustomerName = displayName(user)
				order.CustomerAddress = displayAddress(user)
				order.CustomerContact = displayContact(user)
				return
			}
			order.CustomerAddress = PlaceholderNoAddress
			order.CustomerContact = PlaceholderNoContact
		}(&orders[i])
	}
	wg.Wait()
}

func displayName(user *models.User) string {
	if user.Name != nil && *user.Name != "" {
		return *user.Name
	}
	return PlaceholderUnknownName
}

func displayAddress(user *models.User) string {
	if user.Address != nil && *user.Address != "" {
		return *user.Address
	}
	return PlaceholderNoAddress
}

// displayContact prefers the phone number and falls back to email.
func displayContact(user *models.User) string {
	if user.PhoneNumber != nil && *user.PhoneNumber != "" {
		return *user.PhoneNumber
	}
	if user.Email != nil && *user.Email != "" {
		return *user.Email
	}
	return PlaceholderNoContact
}
