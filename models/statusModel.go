package models

import (
	"fmt"
	"strings"
)

// OrderStatus is the single source of truth for the status enum. Display
// styling and notification copy live in one table here instead of being
// repeated as string literals across controllers.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusBeingMade      OrderStatus = "Being Made"
	StatusBeingDelivered OrderStatus = "Being Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
	StatusCompleted      OrderStatus = "Completed"
)

// StatusStyle carries the per-status display metadata and the push
// notification copy for a transition into that status.
type StatusStyle struct {
	Color             string `json:"color"`
	Icon              string `json:"icon"`
	NotificationTitle string `json:"notification_title"`
	NotificationBody  string `json:"notification_body"`
}

var statusTable = map[OrderStatus]StatusStyle{
	StatusPending: {
		Color:             "amber",
		Icon:              "time",
		NotificationTitle: "Order Received",
		NotificationBody:  "We’ve received your order and will begin preparing it shortly.",
	},
	StatusBeingMade: {
		Color:             "blue",
		Icon:              "chef",
		NotificationTitle: "Your Order Is Being Prepared",
		NotificationBody:  "Our kitchen is now cooking your order. Thank you for waiting!",
	},
	StatusBeingDelivered: {
		Color:             "purple",
		Icon:              "delivery",
		NotificationTitle: "Your Order Is On the Way 🚗",
		NotificationBody:  "Our rider is heading to your location. Please keep your phone nearby.",
	},
	StatusCancelled: {
		Color:             "red",
		Icon:              "cancel",
		NotificationTitle: "Order Cancelled",
		NotificationBody:  "Your order has been cancelled. If you believe this is a mistake, please contact us.",
	},
	StatusCompleted: {
		Color:             "green",
		Icon:              "archive",
		NotificationTitle: "Order Complete",
		NotificationBody:  "Your order has been completed. Thank you for ordering!",
	},
}

// AllStatuses returns the enum in dashboard display order.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusBeingMade,
		StatusBeingDelivered,
		StatusCancelled,
		StatusCompleted,
	}
}

func (s OrderStatus) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

// Style returns display metadata for the status. Unknown statuses fall back
// to generic copy rather than failing.
func (s OrderStatus) Style() StatusStyle {
	if style, ok := statusTable[s]; ok {
		return style
	}
	return StatusStyle{
		Color:             "gray",
		Icon:              "info",
		NotificationTitle: "Order Update",
		NotificationBody:  fmt.Sprintf("Your order status has changed to: %s", s),
	}
}

// Notification returns the {title, body} pair sent when an order moves into
// this status.
func (s OrderStatus) Notification() (title, body string) {
	style := s.Style()
	return style.NotificationTitle, style.NotificationBody
}

// Historical reports whether the status belongs in the history view.
func (s OrderStatus) Historical() bool {
	return strings.EqualFold(string(s), string(StatusCompleted)) ||
		strings.EqualFold(string(s), string(StatusCancelled))
}
