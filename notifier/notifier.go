// Package notifier dispatches status-change push notifications. The status
// write has already happened by the time a dispatcher runs; everything here
// is best-effort and the caller only logs the result.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Zeralyxx/BicutanBites-Admin/models"
)

const defaultEndpoint = "https://fcm.googleapis.com/fcm/send"

// Outcome classifies a dispatch attempt.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Result reports what happened to a single dispatch. Skipped means the
// pipeline short-circuited on a missing field or an opt-out; Failed means
// a lookup or the gateway call went wrong.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

func sent() Result                 { return Result{Outcome: OutcomeSent} }
func skipped(reason string) Result { return Result{Outcome: OutcomeSkipped, Reason: reason} }
func failed(reason string) Result  { return Result{Outcome: OutcomeFailed, Reason: reason} }

// OrderSource loads an order by id. A nil order with a nil error means the
// document does not exist.
type OrderSource interface {
	OrderByID(ctx context.Context, orderID string) (*models.Order, error)
}

// UserSource loads a user by id with the same nil-nil convention.
type UserSource interface {
	UserByID(ctx context.Context, userID string) (*models.User, error)
}

type Dispatcher struct {
	orders    OrderSource
	users     UserSource
	endpoint  string
	serverKey string
	client    *http.Client
	log       *logrus.Logger
}

func NewDispatcher(orders OrderSource, users UserSource, endpoint, serverKey string, log *logrus.Logger) *Dispatcher {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Dispatcher{
		orders:    orders,
		users:     users,
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

// NotifyStatusChange runs the order -> user -> token -> gateway chain for a
// status that was just written. Every missing link short-circuits into a
// Skipped result; there is no retry.
func (d *Dispatcher) NotifyStatusChange(ctx context.Context, orderID string, status models.OrderStatus) Result {
	order, err := d.orders.OrderByID(ctx, orderID)
	if err != nil {
		return failed(fmt.Sprintf("load order: %v", err))
	}
	if order == nil {
		return skipped("order not found")
	}
	if order.User_id == "" {
		return skipped("order has no user id")
	}

	user, err := d.users.UserByID(ctx, order.User_id)
	if err != nil {
		return failed(fmt.Sprintf("load user: %v", err))
	}
	if user == nil {
		return skipped("user not found")
	}
	if user.FcmToken == nil || *user.FcmToken == "" {
		return skipped("user has no push token")
	}
	// Absent flag counts as opted in; only an explicit false skips.
	if user.ReceiveOrderNotifications != nil && !*user.ReceiveOrderNotifications {
		return skipped("user opted out")
	}

	title, body := status.Notification()
	return d.send(ctx, *user.FcmToken, title, body)
}

func (d *Dispatcher) send(ctx context.Context, token, title, body string) Result {
	payload := map[string]interface{}{
		"to": token,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return failed(fmt.Sprintf("encode payload: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return failed(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+d.serverKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return failed(fmt.Sprintf("gateway request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failed(fmt.Sprintf("gateway responded %d", resp.StatusCode))
	}
	return sent()
}

// LogResult records a dispatch result. Failures are visible in logs only;
// they never reach the admin who changed the status.
func (d *Dispatcher) LogResult(orderID string, status models.OrderStatus, result Result) {
	if d.log == nil {
		return
	}
	entry := d.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
		"outcome":  result.Outcome,
		"reason":   result.Reason,
	})
	if result.Outcome == OutcomeFailed {
		entry.Warn("push notification failed")
		return
	}
	entry.Info("push notification dispatched")
}
