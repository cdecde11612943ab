package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tuiter/internal/domain"
	"tuiter/internal/service"
)

// MessageHandler mantiene dependencias para endpoints de mensajes
// directos.
type MessageHandler struct {
	logger        *zap.Logger
	messages      *service.MessageService
	conversations *service.ConversationService
}

// NewMessageHandler crea una instancia de MessageHandler con
// dependencias necesarias.
func NewMessageHandler(logger *zap.Logger, messages *service.MessageService, conversations *service.ConversationService) *MessageHandler {
	return &MessageHandler{
		logger:        logger,
		messages:      messages,
		conversations: conversations,
	}
}

// Send maneja POST /users/:uid/messages/:rid.
func (h *MessageHandler) Send(c *gin.Context) {
	senderID := c.Param("uid")
	recipientID := c.Param("rid")
	if !enforceCaller(c, senderID) {
		return
	}

	var req struct {
		Body       string                `json:"body" binding:"required"`
		Attachment domain.AttachmentKind `json:"attachment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), senderID, recipientID, req.Body, req.Attachment)
	if err != nil {
		if errors.Is(err, service.ErrMessageInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
			return
		}
		h.logger.Error("send message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Get maneja GET /messages/:mid.
func (h *MessageHandler) Get(c *gin.Context) {
	msg, err := h.messages.Get(c.Request.Context(), c.Param("mid"))
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		h.logger.Error("get message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Update maneja PUT /messages/:mid.
func (h *MessageHandler) Update(c *gin.Context) {
	var patch domain.MessagePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid update message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	mid := c.Param("mid")
	if err := h.messages.Update(c.Request.Context(), mid, patch); err != nil {
		switch {
		case errors.Is(err, service.ErrMessageInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch"})
		case errors.Is(err, service.ErrMessageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		default:
			h.logger.Error("update message failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update message"})
		}
		return
	}

	msg, err := h.messages.Get(c.Request.Context(), mid)
	if err != nil {
		h.logger.Error("reload updated message failed", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Delete maneja DELETE /messages/:mid. Borrar un id ausente también
// responde éxito.
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), c.Param("mid")); err != nil {
		h.logger.Error("delete message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete message"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAll maneja GET /messages.
func (h *MessageHandler) ListAll(c *gin.Context) {
	msgs, err := h.messages.All(c.Request.Context())
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// ListSent maneja GET /users/:uid/messages.
func (h *MessageHandler) ListSent(c *gin.Context) {
	msgs, err := h.messages.SentBy(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.logger.Error("list sent messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// ListReceived maneja GET /users/:uid/received-messages.
func (h *MessageHandler) ListReceived(c *gin.Context) {
	msgs, err := h.messages.ReceivedBy(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.logger.Error("list received messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// ListBetween maneja GET /users/:uid/messages/:rid.
func (h *MessageHandler) ListBetween(c *gin.Context) {
	msgs, err := h.conversations.Direct(c.Request.Context(), c.Param("uid"), c.Param("rid"))
	if err != nil {
		if errors.Is(err, service.ErrMessageInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("list conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PurgeSent maneja DELETE /users/:uid/delete-sent-messages.
func (h *MessageHandler) PurgeSent(c *gin.Context) {
	uid := c.Param("uid")
	if !enforceCaller(c, uid) {
		return
	}
	count, err := h.messages.PurgeSentBy(c.Request.Context(), uid)
	if err != nil {
		h.logger.Error("purge sent messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

// PurgeReceived maneja DELETE /users/:uid/delete-received-messages.
func (h *MessageHandler) PurgeReceived(c *gin.Context) {
	uid := c.Param("uid")
	if !enforceCaller(c, uid) {
		return
	}
	count, err := h.messages.PurgeReceivedBy(c.Request.Context(), uid)
	if err != nil {
		h.logger.Error("purge received messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}
