package stockControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/louamlemjid/caisse-api/metrics"
	"github.com/louamlemjid/caisse-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// StockWebSocketHandler upgrades GET /ws/stock; connected dashboards
// receive a JSON alert whenever a product hits its threshold.
func StockWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// BroadcastAlerte pushes a low-stock alert to every connected client.
func BroadcastAlerte(stock models.Stock) {
	data, err := json.Marshal(gin.H{"type": "stock_alerte", "stock": stock})
	if err != nil {
		return
	}

	metrics.StockAlertsTotal.Inc()

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
