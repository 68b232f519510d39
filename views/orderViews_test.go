package views

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{Order_id: "aaa111", User_id: "u1", Status: models.StatusPending, CustomerName: "Maria Santos"},
		{Order_id: "bbb222", User_id: "u2", Status: models.StatusBeingMade, Note: strPtr("No onions please")},
		{Order_id: "ccc333", User_id: "u1", Status: models.StatusBeingDelivered},
		{Order_id: "ddd444", User_id: "u3", Status: models.StatusPending, CustomerName: "Jose Cruz"},
	}
}

func orderIDs(orders []models.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.Order_id)
	}
	return ids
}

func TestFilterOrdersByStatus(t *testing.T) {
	got := FilterOrders(sampleOrders(), "pending", "")
	if want := []string{"aaa111", "ddd444"}; !reflect.DeepEqual(orderIDs(got), want) {
		t.Fatalf("expected %v, got %v", want, orderIDs(got))
	}
}

func TestFilterOrdersStatusThenSearch(t *testing.T) {
	// "maria" only matches a Pending order; asking for Being Made first
	// must come back empty.
	got := FilterOrders(sampleOrders(), "Being Made", "maria")
	if len(got) != 0 {
		t.Fatalf("expected no orders, got %v", orderIDs(got))
	}
}

func TestFilterOrdersSearchFields(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"by id", "bbb", []string{"bbb222"}},
		{"by note", "onions", []string{"bbb222"}},
		{"by customer name", "santos", []string{"aaa111"}},
		{"no match", "sinigang", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := orderIDs(FilterOrders(sampleOrders(), FilterAll, tc.search))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFilterOrdersClearSearchIsIdempotent(t *testing.T) {
	master := sampleOrders()
	before := orderIDs(FilterOrders(master, "Pending", ""))
	_ = FilterOrders(master, "Pending", "jose")
	after := orderIDs(FilterOrders(master, "Pending", ""))
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("clearing search changed the list: %v vs %v", before, after)
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(sampleOrders())
	want := StatusCounts{All: 4, Pending: 2, BeingMade: 1, BeingDelivered: 1}
	if counts != want {
		t.Fatalf("expected %+v, got %+v", want, counts)
	}
}

func TestHistoryOnlyFollowsStatus(t *testing.T) {
	order := models.Order{Order_id: "hhh", Status: models.StatusCompleted}
	if got := HistoryOnly([]models.Order{order}); len(got) != 1 {
		t.Fatalf("completed order missing from history")
	}

	order.Status = models.StatusPending
	if got := HistoryOnly([]models.Order{order}); len(got) != 0 {
		t.Fatalf("pending order leaked into history")
	}

	order.Status = models.StatusCancelled
	if got := HistoryOnly([]models.Order{order}); len(got) != 1 {
		t.Fatalf("cancelled order missing from history")
	}
}

func TestResolveCustomers(t *testing.T) {
	name := "Maria Santos"
	address := "123 Mabini St"
	phone := "0917 555 0101"
	email := "maria@example.com"

	users := map[string]*models.User{
		"u1": {User_id: "u1", Name: &name, Address: &address, PhoneNumber: &phone},
		"u2": {User_id: "u2", Email: &email},
	}
	lookup := func(ctx context.Context, userID string) (*models.User, error) {
		if userID == "boom" {
			return nil, errors.New("store unavailable")
		}
		return users[userID], nil
	}

	orders := []models.Order{
		{Order_id: "1", User_id: "u1"},
		{Order_id: "2", User_id: "u2"},
		{Order_id: "3", User_id: "dangling"},
		{Order_id: "4"},
		{Order_id: "5", User_id: "boom"},
	}

	ResolveCustomers(context.Background(), orders, lookup)

	if orders[0].CustomerName != "Maria Santos" || orders[0].CustomerContact != phone {
		t.Fatalf("full user not resolved: %+v", orders[0])
	}
	if orders[1].CustomerContact != email {
		t.Fatalf("contact did not fall back to email: %+v", orders[1])
	}
	if orders[2].CustomerName != PlaceholderUserNotFound {
		t.Fatalf("dangling user id should render %q, got %q", PlaceholderUserNotFound, orders[2].CustomerName)
	}
	if orders[3].CustomerName != PlaceholderNoUser {
		t.Fatalf("missing user id should render %q, got %q", PlaceholderNoUser, orders[3].CustomerName)
	}
	if orders[4].CustomerName != PlaceholderUserError {
		t.Fatalf("lookup failure should render %q, got %q", PlaceholderUserError, orders[4].CustomerName)
	}
}

func TestResolveCustomersFillsEveryRowBeforeReturning(t *testing.T) {
	lookup := func(ctx context.Context, userID string) (*models.User, error) {
		return nil, nil
	}

	orders := make([]models.Order, 20)
	for i := range orders {
		orders[i].User_id = "ghost"
	}

	ResolveCustomers(context.Background(), orders, lookup)

	for i := range orders {
		if orders[i].CustomerName == "" {
			t.Fatalf("row %d left unresolved after batch returned", i)
		}
	}
}
