// File: handlers/notification.go
package handlers

import (
	"net/http"

	"clinibook/services/notification"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the poll-based notification surface.
type NotificationHandler struct {
	Svc notification.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

// ListHandler handles GET /api/notifications. Pass ?unread=true to filter.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.Svc.ListForUser(c.Request.Context(), c.GetString("userID"), unreadOnly)
	if err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkReadHandler handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

// DeleteHandler handles DELETE /api/notifications/:id.
func (h *NotificationHandler) DeleteHandler(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		utils.JSONDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
