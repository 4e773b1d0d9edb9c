package notifier

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

// Event types pushed to connected admin consoles.
const (
	EventOrderCreated  = "order_created"
	EventOrderUpdated  = "order_updated"
	EventAdminNotif    = "admin_notification"
	EventReceiptStored = "receipt_stored"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected admin client. Order events fan out to all of
// them; a slow or dead client is skipped, not waited on.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> client label
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn, label string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = label
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount reports the number of connected clients.
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastOrderCreated announces a freshly inserted order with its items.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{
		Event: EventOrderCreated,
		Data:  order,
	})
}

// BroadcastOrderUpdated announces a status change.
func BroadcastOrderUpdated(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdated,
		Data:  order,
	})
}

// BroadcastNotification pushes a transient alert line to the admin console.
func BroadcastNotification(notif models.Notification) {
	broadcast(Message{
		Event: EventAdminNotif,
		Data:  notif,
	})
}

// BroadcastReceiptStored tells consoles a receipt artifact landed on disk.
func BroadcastReceiptStored(orderID uint, filename string) {
	broadcast(Message{
		Event: EventReceiptStored,
		Data: map[string]interface{}{
			"order_id": orderID,
			"filename": filename,
		},
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, label := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to client %s: %v", msg.Event, label, err)
			continue
		}
	}
}
