package handler

import (
	"errors"

	"friendchat/internal/service"
	"friendchat/pkg/auth"
	"friendchat/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler exposes messaging and conversation queries.
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(s *service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

// Send handles POST /api/v1/messages/send.
func (h *MessageHandler) Send(c *gin.Context) {
	senderID := auth.IdentityFromContext(c)

	type req struct {
		RecipientID string `json:"recipient_id" binding:"required"`
		Body        string `json:"body" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, "recipient_id and body are required")
		return
	}

	message, err := h.service.Send(senderID, r.RecipientID, r.Body)
	if err != nil {
		h.writeError(c, err, "send message failed")
		return
	}

	response.Created(c, "message sent", message)
}

// History handles GET /api/v1/conversations/:user_id/messages.
func (h *MessageHandler) History(c *gin.Context) {
	callerID := auth.IdentityFromContext(c)
	otherUserID := c.Param("user_id")

	history, err := h.service.History(callerID, otherUserID)
	if err != nil {
		h.writeError(c, err, "load history failed")
		return
	}

	response.Success(c, history)
}

// Latest handles GET /api/v1/conversations/:user_id/latest.
func (h *MessageHandler) Latest(c *gin.Context) {
	callerID := auth.IdentityFromContext(c)
	otherUserID := c.Param("user_id")

	summary, err := h.service.Latest(callerID, otherUserID)
	if err != nil {
		h.writeError(c, err, "load latest message failed")
		return
	}
	if summary == nil {
		response.NotFound(c, "no messages in this conversation")
		return
	}

	response.Success(c, summary)
}

// Digest handles GET /api/v1/conversations.
func (h *MessageHandler) Digest(c *gin.Context) {
	callerID := auth.IdentityFromContext(c)

	summaries, err := h.service.Digest(callerID)
	if err != nil {
		h.writeError(c, err, "load digest failed")
		return
	}

	response.Success(c, summaries)
}

func (h *MessageHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFriends):
		response.Forbidden(c, "you can only exchange messages with your friends")
	default:
		zap.L().Error(logMsg, zap.Error(err))
		response.InternalError(c)
	}
}
