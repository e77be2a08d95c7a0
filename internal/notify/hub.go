package notify

import (
	"sync"

	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/logging"

	"github.com/gorilla/websocket"
)

// Event is the wire envelope pushed to battle watchers.
type Event struct {
	Type     string      `json:"type"`
	BattleID uint        `json:"battle_id"`
	Payload  interface{} `json:"payload"`
}

const (
	EventTurn   = "battle_turn"
	EventStatus = "battle_status"
)

// watcher wraps one subscriber connection. The websocket package allows
// a single concurrent writer per connection, and pushes arrive from turn
// resolution, settlement and the timeout scanner at once, so every write
// goes through the per-connection mutex.
type watcher struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *watcher) write(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(ev)
}

// Hub fans battle events out to websocket subscribers grouped by battle.
// Delivery is fire-and-forget: a slow or dead connection is dropped, and
// the battle flow never waits on it.
type Hub struct {
	mu       sync.RWMutex
	watchers map[uint]map[*websocket.Conn]*watcher
}

func NewHub() *Hub {
	return &Hub{watchers: make(map[uint]map[*websocket.Conn]*watcher)}
}

// Subscribe registers a connection for one battle's events. The caller
// keeps ownership of the connection's read side.
func (h *Hub) Subscribe(battleID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[battleID] == nil {
		h.watchers[battleID] = make(map[*websocket.Conn]*watcher)
	}
	h.watchers[battleID][conn] = &watcher{conn: conn}
}

// Unsubscribe removes a connection and closes it.
func (h *Hub) Unsubscribe(battleID uint, conn *websocket.Conn) {
	h.mu.Lock()
	if set, ok := h.watchers[battleID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.watchers, battleID)
		}
	}
	h.mu.Unlock()
	_ = conn.Close()
}

// BattleTurn pushes a freshly logged turn to the battle's watchers.
func (h *Hub) BattleTurn(battleID uint, turn *game.BattleTurn) {
	h.broadcast(battleID, Event{Type: EventTurn, BattleID: battleID, Payload: turn})
}

// BattleStatus pushes a battle state change (completion, expiry,
// settlement) to the battle's watchers.
func (h *Hub) BattleStatus(b *game.Battle) {
	h.broadcast(b.ID, Event{Type: EventStatus, BattleID: b.ID, Payload: b})
}

func (h *Hub) broadcast(battleID uint, ev Event) {
	h.mu.RLock()
	ws := make([]*watcher, 0, len(h.watchers[battleID]))
	for _, w := range h.watchers[battleID] {
		ws = append(ws, w)
	}
	h.mu.RUnlock()

	for _, w := range ws {
		if err := w.write(ev); err != nil {
			logging.Info("dropping battle watcher", logging.Fields{"battle_id": battleID})
			h.Unsubscribe(battleID, w.conn)
		}
	}
}
