package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
)

// StandupHandler serves the channel standup routes.
type StandupHandler struct {
	standups *service.Standups
	logger   *zap.Logger
}

func NewStandupHandler(standups *service.Standups, logger *zap.Logger) *StandupHandler {
	return &StandupHandler{standups: standups, logger: logger}
}

type startStandupRequest struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
	Length    int64  `json:"length"`
}

type sendStandupRequest struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
	Message   string `json:"message"`
}

// Start handles POST /standup/start/v1
func (h *StandupHandler) Start(c *gin.Context) {
	var req startStandupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	finish, err := h.standups.Start(req.Token, req.ChannelID, req.Length)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_finish": finish})
}

// Active handles GET /standup/active/v1
func (h *StandupHandler) Active(c *gin.Context) {
	channelID, err := queryInt64(c, "channel_id")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	status, err := h.standups.Active(c.Query("token"), channelID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Send handles POST /standup/send/v1
func (h *StandupHandler) Send(c *gin.Context) {
	var req sendStandupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.standups.Send(req.Token, req.ChannelID, req.Message); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
