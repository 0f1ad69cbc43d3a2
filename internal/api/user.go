package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
)

// UserHandler serves the user profile routes.
type UserHandler struct {
	identity *service.Identity
	logger   *zap.Logger
}

func NewUserHandler(identity *service.Identity, logger *zap.Logger) *UserHandler {
	return &UserHandler{identity: identity, logger: logger}
}

type setNameRequest struct {
	Token     string `json:"token"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
}

type setEmailRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type setHandleRequest struct {
	Token  string `json:"token"`
	Handle string `json:"handle_str"`
}

// Profile handles GET /user/profile/v2
func (h *UserHandler) Profile(c *gin.Context) {
	uid, err := queryInt64(c, "u_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	profile, err := h.identity.Profile(c.Query("token"), uid)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// SetName handles PUT /user/profile/setname/v2
func (h *UserHandler) SetName(c *gin.Context) {
	var req setNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.identity.SetName(req.Token, req.NameFirst, req.NameLast); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// SetEmail handles PUT /user/profile/setemail/v2
func (h *UserHandler) SetEmail(c *gin.Context) {
	var req setEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.identity.SetEmail(req.Token, req.Email); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// SetHandle handles PUT /user/profile/sethandle/v1
func (h *UserHandler) SetHandle(c *gin.Context) {
	var req setHandleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.identity.SetHandle(req.Token, req.Handle); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// All handles GET /users/all/v1
func (h *UserHandler) All(c *gin.Context) {
	users, err := h.identity.All(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Stats handles GET /user/stats/v1
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.identity.Stats(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_stats": stats})
}

// WorkspaceStats handles GET /users/stats/v1
func (h *UserHandler) WorkspaceStats(c *gin.Context) {
	stats, err := h.identity.WorkspaceStats(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dreams_stats": stats})
}
