package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tuiter/internal/service"
)

// GroupMessageHandler mantiene dependencias para endpoints de
// mensajes de grupo.
type GroupMessageHandler struct {
	logger        *zap.Logger
	groupMessages *service.GroupMessageService
	groups        *service.GroupService
	conversations *service.ConversationService
}

// NewGroupMessageHandler crea una instancia de GroupMessageHandler
// con dependencias necesarias.
func NewGroupMessageHandler(
	logger *zap.Logger,
	groupMessages *service.GroupMessageService,
	groups *service.GroupService,
	conversations *service.ConversationService,
) *GroupMessageHandler {
	return &GroupMessageHandler{
		logger:        logger,
		groupMessages: groupMessages,
		groups:        groups,
		conversations: conversations,
	}
}

// Send maneja POST /users/:uid/group-messages/:gid.
func (h *GroupMessageHandler) Send(c *gin.Context) {
	senderID := c.Param("uid")
	if !enforceCaller(c, senderID) {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send group message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.groupMessages.Send(c.Request.Context(), senderID, c.Param("gid"), req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupMessageInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
		case errors.Is(err, service.ErrNotGroupMember):
			c.JSON(http.StatusForbidden, gin.H{"error": "sender is not a group member"})
		default:
			h.logger.Error("send group message failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Resolve maneja GET /group-messages/:id, que históricamente sirve
// dos recursos: si el id corresponde a un grupo devuelve su
// conversación; si no, intenta resolverlo como mensaje individual.
func (h *GroupMessageHandler) Resolve(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.groups.Get(c.Request.Context(), id); err == nil {
		msgs, err := h.conversations.Group(c.Request.Context(), id)
		if err != nil {
			h.logger.Error("list group conversation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
		return
	}

	msg, err := h.groupMessages.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGroupMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group message not found"})
			return
		}
		h.logger.Error("get group message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Delete maneja DELETE /group-messages/:id. Borrar un id ausente
// también responde éxito.
func (h *GroupMessageHandler) Delete(c *gin.Context) {
	if err := h.groupMessages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete group message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete message"})
		return
	}
	c.Status(http.StatusNoContent)
}
