package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ichramsyah/bebasblog-backend/models"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NotificationHub pushes like and comment notifications to every open
// websocket of the post owner. Clients never send anything meaningful; the
// read side only exists to notice when they go away.
type NotificationHub struct {
	conns    map[primitive.ObjectID]map[*client]bool
	mut      sync.Mutex
	upgrader websocket.Upgrader
}

func NewNotificationHub(allowedOrigins []string) *NotificationHub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &NotificationHub{
		conns: make(map[primitive.ObjectID]map[*client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

func (h *NotificationHub) HandleWS(c *gin.Context, me *models.Principal) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade for %s: %v", me.Username, err)
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(me.ID, cl)
	go h.writeLoop(cl)

	h.readLoop(cl)
	h.unregister(me.ID, cl)
}

// Notify never blocks: a client whose buffer is full is dropped.
func (h *NotificationHub) Notify(userID primitive.ObjectID, n models.Notification) {
	msg, err := json.Marshal(n)
	if err != nil {
		log.Printf("marshal notification: %v", err)
		return
	}

	h.mut.Lock()
	defer h.mut.Unlock()
	for cl := range h.conns[userID] {
		select {
		case cl.send <- msg:
		default:
			h.removeLocked(userID, cl)
		}
	}
}

// ConnectionCount reports how many sockets a user currently holds.
func (h *NotificationHub) ConnectionCount(userID primitive.ObjectID) int {
	h.mut.Lock()
	defer h.mut.Unlock()
	return len(h.conns[userID])
}

func (h *NotificationHub) register(userID primitive.ObjectID, cl *client) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*client]bool)
	}
	h.conns[userID][cl] = true
}

func (h *NotificationHub) unregister(userID primitive.ObjectID, cl *client) {
	h.mut.Lock()
	defer h.mut.Unlock()
	h.removeLocked(userID, cl)
}

// removeLocked closes the client's send channel, which stops its writeLoop.
func (h *NotificationHub) removeLocked(userID primitive.ObjectID, cl *client) {
	set := h.conns[userID]
	if !set[cl] {
		return
	}
	delete(set, cl)
	if len(set) == 0 {
		delete(h.conns, userID)
	}
	close(cl.send)
}

func (h *NotificationHub) readLoop(cl *client) {
	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
	}
}

func (h *NotificationHub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("websocket write: %v", err)
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
