package handler

import (
	"friendchat/pkg/redis"
	"friendchat/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PresenceHandler exposes the redis-backed online status.
type PresenceHandler struct {
	presence *redis.PresenceStore
}

// NewPresenceHandler creates a PresenceHandler.
func NewPresenceHandler(presence *redis.PresenceStore) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

// Get handles GET /api/v1/users/:user_id/presence.
func (h *PresenceHandler) Get(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		response.BadRequest(c, "user_id is required")
		return
	}

	presence, err := h.presence.Get(userID)
	if err != nil {
		zap.L().Error("get presence failed", zap.String("user_id", userID), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Success(c, presence)
}
