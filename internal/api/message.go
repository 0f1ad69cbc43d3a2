package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
)

// MessageHandler serves the messaging engine routes.
type MessageHandler struct {
	messages *service.Messages
	logger   *zap.Logger
}

func NewMessageHandler(messages *service.Messages, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

type sendMessageRequest struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
	Message   string `json:"message"`
}

type sendDMRequest struct {
	Token   string `json:"token"`
	DMID    int64  `json:"dm_id"`
	Message string `json:"message"`
}

type editMessageRequest struct {
	Token     string `json:"token"`
	MessageID int64  `json:"message_id"`
	Message   string `json:"message"`
}

type removeMessageRequest struct {
	Token     string `json:"token"`
	MessageID int64  `json:"message_id"`
}

type shareMessageRequest struct {
	Token       string `json:"token"`
	OgMessageID int64  `json:"og_message_id"`
	Message     string `json:"message"`
	ChannelID   int64  `json:"channel_id"`
	DMID        int64  `json:"dm_id"`
}

type sendLaterRequest struct {
	Token     string `json:"token"`
	ChannelID int64  `json:"channel_id"`
	Message   string `json:"message"`
	TimeSent  int64  `json:"time_sent"`
}

type sendLaterDMRequest struct {
	Token    string `json:"token"`
	DMID     int64  `json:"dm_id"`
	Message  string `json:"message"`
	TimeSent int64  `json:"time_sent"`
}

// Send handles POST /message/send/v2
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	mid, err := h.messages.Send(req.Token, req.ChannelID, req.Message)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": mid})
}

// SendDM handles POST /message/senddm/v1
func (h *MessageHandler) SendDM(c *gin.Context) {
	var req sendDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	mid, err := h.messages.SendDM(req.Token, req.DMID, req.Message)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": mid})
}

// Edit handles PUT /message/edit/v2
func (h *MessageHandler) Edit(c *gin.Context) {
	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.messages.Edit(req.Token, req.MessageID, req.Message); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Remove handles DELETE /message/remove/v1
func (h *MessageHandler) Remove(c *gin.Context) {
	var req removeMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.messages.Remove(req.Token, req.MessageID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Share handles POST /message/share/v1
func (h *MessageHandler) Share(c *gin.Context) {
	var req shareMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	mid, err := h.messages.Share(req.Token, req.OgMessageID, req.Message, req.ChannelID, req.DMID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shared_message_id": mid})
}

// SendLater handles POST /message/sendlater/v1
func (h *MessageHandler) SendLater(c *gin.Context) {
	var req sendLaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	mid, err := h.messages.SendLater(req.Token, req.ChannelID, req.Message, req.TimeSent)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": mid})
}

// SendLaterDM handles POST /message/sendlaterdm/v1
func (h *MessageHandler) SendLaterDM(c *gin.Context) {
	var req sendLaterDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	mid, err := h.messages.SendLaterDM(req.Token, req.DMID, req.Message, req.TimeSent)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message_id": mid})
}

// Search handles GET /search/v2
func (h *MessageHandler) Search(c *gin.Context) {
	messages, err := h.messages.Search(c.Query("token"), c.Query("query_str"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
