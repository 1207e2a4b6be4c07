package handler

import (
	"friendchat/internal/repository"
	"friendchat/pkg/auth"
	"friendchat/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the caller's notification feed.
type NotificationHandler struct {
	notifications *repository.NotificationRepository
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(notifications *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/v1/notifications, returning the caller's
// notifications in creation order.
func (h *NotificationHandler) List(c *gin.Context) {
	callerID := auth.IdentityFromContext(c)

	notifications, err := h.notifications.ListByRecipient(callerID)
	if err != nil {
		zap.L().Error("list notifications failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Success(c, notifications)
}
