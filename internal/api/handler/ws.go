package handler

import (
	"net/http"

	"crimewatch/backend/internal/livefeed"
	"crimewatch/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeFeed upgrades the connection and attaches the authority to the
// assignment livefeed.
func (h *Handler) ServeFeed(c *gin.Context) {
	authority, err := h.Storage.GetAuthorityByUserID(caller(c).ID)
	if err != nil || authority == nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no authority profile for caller"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &livefeed.WebSocketClient{
		Hub:         h.Hub,
		AuthorityID: authority.ID,
		Conn:        conn,
		Send:        make(chan models.AssignmentEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
