package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tuiter/internal/domain"
	"tuiter/internal/service"
)

// GroupHandler mantiene dependencias para endpoints de grupos.
type GroupHandler struct {
	logger *zap.Logger
	groups *service.GroupService
}

// NewGroupHandler crea una instancia de GroupHandler con dependencias
// necesarias.
func NewGroupHandler(logger *zap.Logger, groups *service.GroupService) *GroupHandler {
	return &GroupHandler{
		logger: logger,
		groups: groups,
	}
}

// Create maneja POST /users/:uid/groups.
func (h *GroupHandler) Create(c *gin.Context) {
	creatorID := c.Param("uid")
	if !enforceCaller(c, creatorID) {
		return
	}

	var req struct {
		Name      string   `json:"name" binding:"required"`
		MemberIDs []string `json:"member_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create group request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	group, err := h.groups.Create(c.Request.Context(), creatorID, req.MemberIDs, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrGroupInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group"})
			return
		}
		h.logger.Error("create group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// Get maneja GET /groups/:gid.
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groups.Get(c.Request.Context(), c.Param("gid"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		h.logger.Error("get group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// Update maneja PUT /groups/:gid.
func (h *GroupHandler) Update(c *gin.Context) {
	var patch domain.GroupPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid update group request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	gid := c.Param("gid")
	if err := h.groups.Update(c.Request.Context(), gid, patch); err != nil {
		switch {
		case errors.Is(err, service.ErrGroupInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch"})
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		default:
			h.logger.Error("update group failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update group"})
		}
		return
	}

	group, err := h.groups.Get(c.Request.Context(), gid)
	if err != nil {
		h.logger.Error("reload updated group failed", zap.Error(err))
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// Delete maneja DELETE /groups/:gid. Borra el grupo y sus mensajes en
// dos pasos; repetirlo es inocuo.
func (h *GroupHandler) Delete(c *gin.Context) {
	if err := h.groups.Delete(c.Request.Context(), c.Param("gid")); err != nil {
		h.logger.Error("delete group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete group"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAll maneja GET /groups.
func (h *GroupHandler) ListAll(c *gin.Context) {
	groups, err := h.groups.All(c.Request.Context())
	if err != nil {
		h.logger.Error("list groups failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// ListForUser maneja GET /users/:uid/groups. Con
// ?metadata=latest-message cada grupo sale con su último mensaje.
func (h *GroupHandler) ListForUser(c *gin.Context) {
	withLatest := c.Query("metadata") == "latest-message"

	summaries, err := h.groups.ForUser(c.Request.Context(), c.Param("uid"), withLatest)
	if err != nil {
		h.logger.Error("list user groups failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list groups"})
		return
	}

	if withLatest {
		c.JSON(http.StatusOK, gin.H{"groups": summaries})
		return
	}

	groups := make([]domain.Group, 0, len(summaries))
	for _, s := range summaries {
		groups = append(groups, s.Group)
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// Membership maneja GET /users/:uid/groups/:gid/membership.
func (h *GroupHandler) Membership(c *gin.Context) {
	member, err := h.groups.IsMember(c.Request.Context(), c.Param("uid"), c.Param("gid"))
	if err != nil {
		h.logger.Error("membership check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check membership"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}
