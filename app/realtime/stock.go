// Package realtime pushes live stock updates to connected admin dashboards
// over WebSocket, with an SSE fallback stream.
package realtime

import (
	"encoding/json"

	"github.com/velora-shop/velora/app/models"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/ws"
)

// Stock is the hub admin dashboards subscribe to on /ws/stock.
var Stock = ws.NewHub()

func init() { go Stock.Run() }

// StockUpdate is one broadcast frame: the product and its remaining
// quantity after an order committed.
type StockUpdate struct {
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// BroadcastOrderStock pushes the post-order quantities of every product in
// the order to all subscribers.
func BroadcastOrderStock(order models.Order) {
	for _, item := range order.Items {
		if item.Product == nil {
			continue
		}
		frame, err := json.Marshal(StockUpdate{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Quantity:  item.Product.Quantity,
		})
		if err != nil {
			logger.Warn("realtime: marshal stock update", "error", err)
			continue
		}
		Stock.Broadcast <- frame
		publish(frame)
	}
}
