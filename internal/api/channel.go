package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
)

// ChannelHandler serves the channel directory routes.
type ChannelHandler struct {
	channels *service.Channels
	logger   *zap.Logger
}

func NewChannelHandler(channels *service.Channels, logger *zap.Logger) *ChannelHandler {
	return &ChannelHandler{channels: channels, logger: logger}
}

type createChannelRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

type channelMemberRequest struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
	UID       int64  `json:"u_id"`
}

type channelRequest struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
}

// Create handles POST /channels/create/v2
func (h *ChannelHandler) Create(c *gin.Context) {
	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cid, err := h.channels.Create(req.Token, req.Name, req.IsPublic)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channel_id": cid})
}

// Invite handles POST /channel/invite/v2
func (h *ChannelHandler) Invite(c *gin.Context) {
	var req channelMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.channels.Invite(req.Token, req.ChannelID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Join handles POST /channel/join/v2
func (h *ChannelHandler) Join(c *gin.Context) {
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.channels.Join(req.Token, req.ChannelID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// AddOwner handles POST /channel/addowner/v1
func (h *ChannelHandler) AddOwner(c *gin.Context) {
	var req channelMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.channels.AddOwner(req.Token, req.ChannelID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// RemoveOwner handles POST /channel/removeowner/v1
func (h *ChannelHandler) RemoveOwner(c *gin.Context) {
	var req channelMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.channels.RemoveOwner(req.Token, req.ChannelID, req.UID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Leave handles POST /channel/leave/v1
func (h *ChannelHandler) Leave(c *gin.Context) {
	var req channelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.channels.Leave(req.Token, req.ChannelID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Details handles GET /channel/details/v2
func (h *ChannelHandler) Details(c *gin.Context) {
	cid, err := queryInt64(c, "channel_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	details, err := h.channels.Details(c.Query("token"), cid)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Messages handles GET /channel/messages/v2
func (h *ChannelHandler) Messages(c *gin.Context) {
	cid, err := queryInt64(c, "channel_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	start, err := queryInt(c, "start")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	page, err := h.channels.Messages(c.Query("token"), cid, start)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// List handles GET /channels/list/v2
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.channels.List(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}

// ListAll handles GET /channels/listall/v2
func (h *ChannelHandler) ListAll(c *gin.Context) {
	channels, err := h.channels.ListAll(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"channels": channels})
}
