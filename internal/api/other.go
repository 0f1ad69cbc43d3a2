package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/apperr"
	"github.com/lalith-99/dreams/internal/service"
	"github.com/lalith-99/dreams/internal/store"
)

// OtherHandler serves the routes that sit outside the main resource groups.
type OtherHandler struct {
	notifications *service.Notifications
	store         *store.Store
	logger        *zap.Logger
}

func NewOtherHandler(notifications *service.Notifications, st *store.Store, logger *zap.Logger) *OtherHandler {
	return &OtherHandler{notifications: notifications, store: st, logger: logger}
}

// Notifications handles GET /notifications/get/v1
func (h *OtherHandler) Notifications(c *gin.Context) {
	notifications, err := h.notifications.Recent(c.Query("token"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// Clear handles DELETE /clear/v1
func (h *OtherHandler) Clear(c *gin.Context) {
	if err := h.store.Reset(); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// Echo handles GET /echo
func (h *OtherHandler) Echo(c *gin.Context) {
	data := c.Query("data")
	if data == "echo" {
		writeError(c, h.logger, apperr.Input("cannot echo %q", data))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}
