package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// XPEvent is pushed to every client watching a grade cohort when someone in
// that cohort earns XP.
type XPEvent struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	XPAmount    int    `json:"xp_amount"`
	Description string `json:"description"`
}

type message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	grade int
}

type registration struct {
	client *Client
}

// Hub fans XP-award events out to websocket clients grouped by grade.
type Hub struct {
	rooms      map[int]map[*Client]bool
	register   chan registration
	unregister chan *Client
	broadcast  chan gradeMessage
}

type gradeMessage struct {
	grade   int
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[int]map[*Client]bool),
		register:   make(chan registration),
		unregister: make(chan *Client),
		broadcast:  make(chan gradeMessage, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			room := h.rooms[reg.client.grade]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[reg.client.grade] = room
			}
			room[reg.client] = true
			log.Printf("WebSocket client joined grade %d feed (%d watching)", reg.client.grade, len(room))

		case client := <-h.unregister:
			if room, ok := h.rooms[client.grade]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.grade)
					}
				}
			}

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.grade] {
				select {
				case client.send <- msg.payload:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.rooms[msg.grade], client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastXPAward publishes an XP event to the grade's room. Non-blocking:
// if the hub is saturated the event is dropped.
func (h *Hub) BroadcastXPAward(grade int, event XPEvent) {
	payload, err := json.Marshal(message{Type: "xp_awarded", Data: event})
	if err != nil {
		log.Printf("Error marshalling XP event: %v", err)
		return
	}

	select {
	case h.broadcast <- gradeMessage{grade: grade, payload: payload}:
	default:
		log.Printf("Activity feed backlogged, dropping XP event for grade %d", grade)
	}
}

// HandleWebSocket upgrades GET /ws/activity/{grade} connections and parks
// them in the grade's room.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	grade, err := strconv.Atoi(mux.Vars(r)["grade"])
	if err != nil {
		http.Error(w, "invalid grade", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, 16),
		grade: grade,
	}
	h.register <- registration{client: client}

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames; the feed is one-way. It exists to notice
// closes and keep the pong handler serviced.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
