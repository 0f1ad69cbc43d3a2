package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/service"
)

// AuthHandler serves registration, login, and logout — the routes that
// produce and retire session tokens.
type AuthHandler struct {
	identity *service.Identity
	logger   *zap.Logger
}

func NewAuthHandler(identity *service.Identity, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, logger: logger}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

// Register handles POST /auth/register/v2
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.identity.Register(req.Email, req.Password, req.NameFirst, req.NameLast)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Login handles POST /auth/login/v2
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.identity.Login(req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Logout handles POST /auth/logout/v1. An already-dead token is not an
// error; the caller just gets is_success=false.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ok, err := h.identity.Logout(req.Token)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_success": ok})
}
