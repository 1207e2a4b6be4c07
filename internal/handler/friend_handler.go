package handler

import (
	"errors"

	"friendchat/internal/service"
	"friendchat/pkg/auth"
	"friendchat/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FriendHandler exposes the friend-request workflow.
type FriendHandler struct {
	service *service.FriendService
}

// NewFriendHandler creates a FriendHandler.
func NewFriendHandler(s *service.FriendService) *FriendHandler {
	return &FriendHandler{service: s}
}

// Request handles POST /api/v1/friends/request.
func (h *FriendHandler) Request(c *gin.Context) {
	requesterID := auth.IdentityFromContext(c)

	type req struct {
		RecipientID string `json:"recipient_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, "recipient_id is required")
		return
	}

	rel, notification, err := h.service.Request(requesterID, r.RecipientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			response.BadRequest(c, "recipient_id is invalid")
		case errors.Is(err, service.ErrAlreadyRequestedOrFriends):
			response.Conflict(c, "a friend request already exists or you are already friends")
		default:
			zap.L().Error("friend request failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Created(c, "friend request sent", gin.H{
		"relationship": rel,
		"notification": notification,
	})
}

// Respond handles POST /api/v1/friends/respond.
func (h *FriendHandler) Respond(c *gin.Context) {
	responderID := auth.IdentityFromContext(c)

	type req struct {
		NotificationID string `json:"notification_id" binding:"required"`
		Decision       string `json:"decision" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, "notification_id and decision are required")
		return
	}

	rel, err := h.service.Respond(responderID, r.NotificationID, r.Decision)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidDecision):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrNotificationNotFound):
			response.NotFound(c, "notification not found")
		case errors.Is(err, service.ErrRequestNotFound):
			response.NotFound(c, "friend request not found or already settled")
		default:
			zap.L().Error("friend response failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	if rel != nil {
		response.SuccessWithMessage(c, "friend request accepted", rel)
		return
	}
	response.SuccessWithMessage(c, "friend request refused and removed", nil)
}
