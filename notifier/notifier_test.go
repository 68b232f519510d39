package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

type fakeSource struct {
	orders map[string]*models.Order
	users  map[string]*models.User
	err    error
}

func (f *fakeSource) OrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orders[orderID], nil
}

func (f *fakeSource) UserByID(ctx context.Context, userID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[userID], nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newSource() *fakeSource {
	return &fakeSource{
		orders: map[string]*models.Order{
			"o1": {Order_id: "o1", User_id: "u1", Status: models.StatusBeingMade},
		},
		users: map[string]*models.User{
			"u1": {User_id: "u1", FcmToken: strPtr("device-token-1")},
		},
	}
}

func TestNotifyStatusChangeSendsGatewayRequest(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]interface{}

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	d := NewDispatcher(newSource(), newSource(), gateway.URL, "server-key-123", nil)
	result := d.NotifyStatusChange(context.Background(), "o1", models.StatusBeingDelivered)

	if result.Outcome != OutcomeSent {
		t.Fatalf("expected sent, got %+v", result)
	}
	if gotAuth != "key=server-key-123" {
		t.Errorf("bad Authorization header: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("bad Content-Type: %q", gotContentType)
	}
	if gotBody["to"] != "device-token-1" {
		t.Errorf("bad token in payload: %v", gotBody["to"])
	}

	notification, ok := gotBody["notification"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing notification object: %v", gotBody)
	}
	wantTitle, wantBody := models.StatusBeingDelivered.Notification()
	if notification["title"] != wantTitle {
		t.Errorf("expected title %q, got %v", wantTitle, notification["title"])
	}
	if notification["body"] != wantBody {
		t.Errorf("expected body %q, got %v", wantBody, notification["body"])
	}
}

func TestNotifyStatusChangeSkips(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway must not be called for skipped dispatches")
	}))
	defer gateway.Close()

	tests := []struct {
		name   string
		mutate func(s *fakeSource)
		reason string
	}{
		{
			name:   "order not found",
			mutate: func(s *fakeSource) { delete(s.orders, "o1") },
			reason: "order not found",
		},
		{
			name:   "order has no user id",
			mutate: func(s *fakeSource) { s.orders["o1"].User_id = "" },
			reason: "order has no user id",
		},
		{
			name:   "user not found",
			mutate: func(s *fakeSource) { delete(s.users, "u1") },
			reason: "user not found",
		},
		{
			name:   "user has no push token",
			mutate: func(s *fakeSource) { s.users["u1"].FcmToken = nil },
			reason: "user has no push token",
		},
		{
			name:   "user opted out",
			mutate: func(s *fakeSource) { s.users["u1"].ReceiveOrderNotifications = boolPtr(false) },
			reason: "user opted out",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := newSource()
			tc.mutate(source)
			d := NewDispatcher(source, source, gateway.URL, "k", nil)

			result := d.NotifyStatusChange(context.Background(), "o1", models.StatusCompleted)
			if result.Outcome != OutcomeSkipped {
				t.Fatalf("expected skipped, got %+v", result)
			}
			if result.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, result.Reason)
			}
		})
	}
}

func TestNotifyStatusChangeAbsentOptInCountsAsOptedIn(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	source := newSource()
	source.users["u1"].ReceiveOrderNotifications = nil

	d := NewDispatcher(source, source, gateway.URL, "k", nil)
	if result := d.NotifyStatusChange(context.Background(), "o1", models.StatusPending); result.Outcome != OutcomeSent {
		t.Fatalf("absent opt-in flag must not skip, got %+v", result)
	}

	source.users["u1"].ReceiveOrderNotifications = boolPtr(true)
	if result := d.NotifyStatusChange(context.Background(), "o1", models.StatusPending); result.Outcome != OutcomeSent {
		t.Fatalf("explicit opt-in must send, got %+v", result)
	}
}

func TestNotifyStatusChangeGatewayFailure(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer gateway.Close()

	d := NewDispatcher(newSource(), newSource(), gateway.URL, "k", nil)
	result := d.NotifyStatusChange(context.Background(), "o1", models.StatusCancelled)
	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected failed on 500, got %+v", result)
	}
}

func TestNotifyStatusChangeUnreachableGateway(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	gateway.Close() // shut down before use

	d := NewDispatcher(newSource(), newSource(), gateway.URL, "k", nil)
	result := d.NotifyStatusChange(context.Background(), "o1", models.StatusPending)
	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected failed on unreachable gateway, got %+v", result)
	}
}

func TestNotifyStatusChangeLookupFailure(t *testing.T) {
	source := newSource()
	source.err = context.DeadlineExceeded

	d := NewDispatcher(source, source, "http://localhost:0", "k", nil)
	result := d.NotifyStatusChange(context.Background(), "o1", models.StatusPending)
	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected failed on lookup error, got %+v", result)
	}
}
