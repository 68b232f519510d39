package controller

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Zeralyxx/BicutanBites-Admin/helper"
	"github.com/Zeralyxx/BicutanBites-Admin/livequery"
	"github.com/Zeralyxx/BicutanBites-Admin/models"
	"github.com/Zeralyxx/BicutanBites-Admin/views"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderFeed streams full active-order snapshots over a websocket. The
// client receives the current list immediately and again after every
// change to the orders collection. Closing the socket tears the change
// stream down, so nothing is ever delivered to a detached client.
func OrderFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := orderCollection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		helper.Logger.WithError(err).Error("order feed: change stream open failed")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "live feed unavailable"))
		return
	}

	sub := livequery.Subscribe(ctx, stream, fetchActiveOrders, helper.Logger)
	defer sub.Stop()

	// Read pump: the client sends nothing meaningful, but a read error is
	// how we learn the socket is gone.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for snapshot := range sub.Snapshots() {
		if err := conn.WriteJSON(feedMessage(snapshot)); err != nil {
			cancel()
			break
		}
	}
}

func feedMessage(orders []models.Order) map[string]interface{} {
	return map[string]interface{}{
		"data":   orders,
		"counts": views.CountByStatus(orders),
	}
}
