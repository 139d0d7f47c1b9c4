package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ChatRooms lists the caller's conversations with unread counts.
func (h *Handler) ChatRooms(c *gin.Context) {
	rooms, err := h.Chat.ListRooms(caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// ChatRoomByCrime opens (or returns) the room tied to a report.
func (h *Handler) ChatRoomByCrime(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	room, err := h.Chat.GetOrCreateRoom(caller(c), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// ChatMessages returns a room's messages; listing also marks them read.
func (h *Handler) ChatMessages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	messages, err := h.Chat.ListMessages(caller(c), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

// SendChatMessage appends a message to the room.
func (h *Handler) SendChatMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	msg, err := h.Chat.SendMessage(caller(c), uint(id), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
