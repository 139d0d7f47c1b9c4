package handler

import (
	"net/http"
	"strconv"
	"time"

	"crimewatch/backend/internal/config"

	"github.com/gin-gonic/gin"
)

// AdminStats returns the dashboard counters.
func (h *Handler) AdminStats(c *gin.Context) {
	users, err := h.Storage.CountUsers()
	if err != nil {
		writeError(c, err)
		return
	}
	authorities, err := h.Storage.CountAuthorities()
	if err != nil {
		writeError(c, err)
		return
	}
	reports, err := h.Storage.CountReports()
	if err != nil {
		writeError(c, err)
		return
	}
	recent, err := h.Storage.CountReportsSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userCount":      users,
		"authorityCount": authorities,
		"reportCount":    reports,
		"recentReports":  recent,
	})
}

// AdminListUsers lists every account.
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.Storage.ListUsers()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

type setStatusRequest struct {
	Status *bool `json:"status" binding:"required"`
}

// AdminSetUserStatus toggles an account's active flag.
func (h *Handler) AdminSetUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := h.Storage.SetUserActive(uint(id), *req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User status updated", "userId": id, "newStatus": *req.Status})
}

// AdminListAuthorities lists every authority profile.
func (h *Handler) AdminListAuthorities(c *gin.Context) {
	authorities, err := h.Storage.ListAuthorities()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authorities)
}

// AdminAuthorityRequests lists pending verification requests.
func (h *Handler) AdminAuthorityRequests(c *gin.Context) {
	authorities, err := h.Storage.ListUnverifiedAuthorities()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authorities)
}

// AdminVerifyAuthority approves an authority for routing.
func (h *Handler) AdminVerifyAuthority(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid authority id"})
		return
	}

	if err := h.Storage.VerifyAuthority(uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Authority verified", "authorityId": id})
}

// AdminGetSeveritySettings returns the live scoring settings.
func (h *Handler) AdminGetSeveritySettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Current())
}

// AdminUpdateSeveritySettings is the only mutation path for the scoring
// settings; anything out of range is rejected.
func (h *Handler) AdminUpdateSeveritySettings(c *gin.Context) {
	var next config.SeveritySettings
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Settings.Update(next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated", "settings": h.Settings.Current()})
}
