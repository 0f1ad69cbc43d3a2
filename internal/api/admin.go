package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
)

// AdminHandler serves the workspace administration routes.
type AdminHandler struct {
	admin  *service.Admin
	logger *zap.Logger
}

func NewAdminHandler(admin *service.Admin, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

type removeUserRequest struct {
	Token string `json:"token"`
	UID   int64  `json:"u_id"`
}

type changePermissionRequest struct {
	Token        string `json:"token"`
	UID          int64  `json:"u_id"`
	PermissionID int    `json:"permission_id"`
}

// RemoveUser handles DELETE /admin/user/remove/v1
func (h *AdminHandler) RemoveUser(c *gin.Context) {
	var req removeUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.admin.RemoveUser(req.Token, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// ChangePermission handles POST /admin/userpermission/change/v1
func (h *AdminHandler) ChangePermission(c *gin.Context) {
	var req changePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.admin.ChangePermission(req.Token, req.UID, req.PermissionID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
