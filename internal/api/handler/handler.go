package handler

import (
	"errors"
	"net/http"

	"crimewatch/backend/internal/apperr"
	"crimewatch/backend/internal/chat"
	"crimewatch/backend/internal/config"
	"crimewatch/backend/internal/livefeed"
	"crimewatch/backend/internal/report"
	"crimewatch/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP routes to the core services.
type Handler struct {
	Storage   storage.Storage
	Reports   *report.Service
	Chat      *chat.Service
	Hub       *livefeed.ManagerService
	Settings  *config.SeverityStore
	JWTSecret []byte
}

func NewHandler(s storage.Storage, reports *report.Service, chatSvc *chat.Service, hub *livefeed.ManagerService, settings *config.SeverityStore, jwtSecret []byte) *Handler {
	return &Handler{
		Storage:   s,
		Reports:   reports,
		Chat:      chatSvc,
		Hub:       hub,
		Settings:  settings,
		JWTSecret: jwtSecret,
	}
}

// RegisterRoutes mounts all routes on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register/user", h.RegisterUser)
		auth.POST("/register/authority", h.RegisterAuthority)
		auth.POST("/login", h.Login)
	}

	crimes := r.Group("/api/crimes")
	{
		crimes.GET("/nearby", h.NearbyCrimes)
		crimes.POST("/report", h.Authenticated(), h.SubmitReport)
		crimes.GET("/user-history", h.Authenticated(), h.UserHistory)
	}

	authority := r.Group("/api/authority", h.Authenticated(), h.RequireAuthority())
	{
		authority.GET("/crimes/pincode/:pincode", h.CrimesByPincode)
		authority.GET("/assigned-complaints", h.AssignedComplaints)
		authority.POST("/complaint/:id/accept", h.AcceptComplaint)
		authority.POST("/complaint/:id/reject", h.RejectComplaint)
		authority.POST("/crimes/:id/update", h.UpdateCrimeStatus)
	}

	chatGroup := r.Group("/api/chat", h.Authenticated())
	{
		chatGroup.GET("/rooms", h.ChatRooms)
		chatGroup.GET("/room/crime/:id", h.ChatRoomByCrime)
		chatGroup.GET("/room/:id/messages", h.ChatMessages)
		chatGroup.POST("/room/:id/send", h.SendChatMessage)
	}

	admin := r.Group("/api/admin", h.Authenticated(), h.RequireAdmin())
	{
		admin.GET("/dashboard/stats", h.AdminStats)
		admin.GET("/users", h.AdminListUsers)
		admin.PATCH("/users/:id/status", h.AdminSetUserStatus)
		admin.GET("/authorities", h.AdminListAuthorities)
		admin.GET("/authorities/requests", h.AdminAuthorityRequests)
		admin.POST("/authorities/:id/verify", h.AdminVerifyAuthority)
		admin.GET("/settings/severity", h.AdminGetSeveritySettings)
		admin.PUT("/settings/severity", h.AdminUpdateSeveritySettings)
	}

	r.GET("/ws/feed", h.Authenticated(), h.RequireAuthority(), h.ServeFeed)
}

// writeError maps the error taxonomy to HTTP statuses. Unknown errors
// become opaque 500s; the detail stays in the log, not the response.
func writeError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.Validation:
		status = http.StatusBadRequest
	case apperr.Forbidden:
		status = http.StatusForbidden
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Conflict:
		status = http.StatusConflict
	case apperr.Routing:
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": appErr.Message, "kind": string(appErr.Kind)})
}
