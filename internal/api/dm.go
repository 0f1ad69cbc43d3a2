package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
)

// DMHandler serves the direct-message directory routes.
type DMHandler struct {
	dms    *service.DMs
	logger *zap.Logger
}

func NewDMHandler(dms *service.DMs, logger *zap.Logger) *DMHandler {
	return &DMHandler{dms: dms, logger: logger}
}

type createDMRequest struct {
	Token string  `json:"token"`
	UIDs  []int64 `json:"u_ids"`
}

type dmRequest struct {
	Token string `json:"token"`
	DMID  int64  `json:"dm_id"`
}

type dmMemberRequest struct {
	Token string `json:"token"`
	DMID  int64  `json:"dm_id"`
	UID   int64  `json:"u_id"`
}

// Create handles POST /dm/create/v1
func (h *DMHandler) Create(c *gin.Context) {
	var req createDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.dms.Create(req.Token, req.UIDs)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// Invite handles POST /dm/invite/v1
func (h *DMHandler) Invite(c *gin.Context) {
	var req dmMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.dms.Invite(req.Token, req.DMID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Leave handles POST /dm/leave/v1
func (h *DMHandler) Leave(c *gin.Context) {
	var req dmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.dms.Leave(req.Token, req.DMID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Remove handles DELETE /dm/remove/v1
func (h *DMHandler) Remove(c *gin.Context) {
	var req dmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.dms.Remove(req.Token, req.DMID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Details handles GET /dm/details/v1
func (h *DMHandler) Details(c *gin.Context) {
	dmID, err := queryInt64(c, "dm_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	details, err := h.dms.Details(c.Query("token"), dmID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// List handles GET /dm/list/v1
func (h *DMHandler) List(c *gin.Context) {
	dms, err := h.dms.List(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dms": dms})
}

// Messages handles GET /dm/messages/v1
func (h *DMHandler) Messages(c *gin.Context) {
	dmID, err := queryInt64(c, "dm_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	start, err := queryInt(c, "start")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	page, err := h.dms.Messages(c.Query("token"), dmID, start)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
