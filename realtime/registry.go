package realtime

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Event is what gets pushed to a user's open connections when one of their
// orders changes.
type Event struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// Conn is the subset of a websocket connection the registry uses.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Registry tracks open connections per user email. Connections register on
// connect and are removed on disconnect or on the first failed write; there
// is no process-global socket map.
type Registry struct {
	mu    sync.Mutex
	conns map[string]map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]map[Conn]struct{})}
}

func (r *Registry) Register(email string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[email] == nil {
		r.conns[email] = make(map[Conn]struct{})
	}
	r.conns[email][c] = struct{}{}
}

func (r *Registry) Remove(email string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.conns[email]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(r.conns, email)
		}
	}
}

// Count reports the number of open connections for a user.
func (r *Registry) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns[email])
}

// Publish fans an event out to every open connection of the user. A
// connection whose write fails is closed and dropped.
func (r *Registry) Publish(email string, ev Event) {
	r.mu.Lock()
	set := make([]Conn, 0, len(r.conns[email]))
	for c := range r.conns[email] {
		set = append(set, c)
	}
	r.mu.Unlock()

	for _, c := range set {
		if err := c.WriteJSON(ev); err != nil {
			log.Printf("realtime: dropping connection for %s: %v", email, err)
			c.Close()
			r.Remove(email, c)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades an authenticated request and keeps the connection
// registered until the peer goes away.
func Handler(reg *Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, ok := c.Get("userEmail").(string)
		if !ok || email == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		}

		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		reg.Register(email, ws)
		defer func() {
			reg.Remove(email, ws)
			ws.Close()
		}()

		// Reads are discarded; the socket exists to push order events.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return nil
			}
		}
	}
}
