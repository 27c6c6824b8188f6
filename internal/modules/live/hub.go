// Package live pushes booking state changes to connected floor-plan
// clients over websockets. It is a fire-and-forget surface: dropped
// connections or slow writers never affect booking operations.
package live

import (
	"sync"
	"time"

	"meetspace/internal/domain"

	"github.com/gorilla/websocket"
)

// Event is the wire payload broadcast on every lifecycle transition.
type Event struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	At        string `json:"at"`
}

type Hub struct {
	// Each connection carries its own write lock: gorilla/websocket
	// allows at most one concurrent writer per connection, and
	// broadcasts come from parallel request goroutines.
	connections map[*websocket.Conn]*sync.Mutex
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.connections[conn] = &sync.Mutex{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// BroadcastBookingEvent fans the event out to every connected client.
// Writers that fail are dropped.
func (h *Hub) BroadcastBookingEvent(eventType string, b *domain.RoomBooking) {
	ev := Event{
		Type:      eventType,
		BookingID: b.ID,
		RoomID:    b.RoomID,
		Date:      b.BookingDate.Format("2006-01-02"),
		StartTime: b.StartTime.Format("15:04"),
		EndTime:   b.EndTime.Format("15:04"),
		Status:    string(b.Status),
		At:        time.Now().UTC().Format(time.RFC3339),
	}

	type subscriber struct {
		conn    *websocket.Conn
		writeMu *sync.Mutex
	}

	h.mutex.RLock()
	subs := make([]subscriber, 0, len(h.connections))
	for conn, mu := range h.connections {
		subs = append(subs, subscriber{conn: conn, writeMu: mu})
	}
	h.mutex.RUnlock()

	for _, s := range subs {
		s.writeMu.Lock()
		err := s.conn.WriteJSON(ev)
		s.writeMu.Unlock()
		if err != nil {
			h.Unregister(s.conn)
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.connections {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}
