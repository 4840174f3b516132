// events/hub.go

// Package events pushes inventory activity (new repair entries, intake
// registrations, generated actas) to connected dashboard clients over a
// websocket feed.
package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Evento is one feed message.
type Evento struct {
	Tipo      string      `json:"tipo"` // reparacion, ingreso, acta
	IDEquipo  int64       `json:"id_equipo,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	mutex      sync.Mutex
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

var hub = &Hub{
	clients:    make(map[*client]bool),
	broadcast:  make(chan []byte, 64),
	register:   make(chan *client),
	unregister: make(chan *client),
}

// Start launches the hub loop. Call once at startup.
func Start() {
	go hub.run()
}

func (h *Hub) run() {
	log.Println("event feed hub started")
	for {
		select {
		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast queues an event for all connected clients. Safe to call from any
// goroutine; drops the event when no hub loop is running yet.
func Broadcast(tipo string, idEquipo int64, payload interface{}) {
	ev := Evento{
		Tipo:      tipo,
		IDEquipo:  idEquipo,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Printf("event marshal error: %v", err)
		return
	}
	select {
	case hub.broadcast <- msg:
	default:
	}
}

// ServeWS upgrades the connection and attaches it to the feed.
func ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16), hub: hub}
	hub.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump discards inbound messages; the feed is one-way. It exists to
// detect closed connections.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
