package api

import (
	"net/http"

	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session auth happens before the upgrade; the frontend is served
	// from the same origin in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchBattle upgrades the request to a websocket and streams the
// battle's turn and status events until the client disconnects.
func (h *BattleHandler) WatchBattle(c *gin.Context) {
	userID := sessionUser(c)
	battleID, ok := parseBattleID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return
	}
	b, err := h.repo.GetBattleByID(battleID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	if b.SideByUser(userID) == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleID: battleID})
		return
	}
	h.hub.Subscribe(battleID, conn)

	// Drain the read side so pings and close frames are processed; the
	// hub owns all writes.
	go func() {
		defer h.hub.Unsubscribe(battleID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
