package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/apperr"
)

// writeError maps the two application error kinds onto the wire:
// InputError → 400, AccessError → 403. Anything else is internal and
// logged but never shown.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case apperr.IsInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsAccess(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// queryInt64 reads an integer query parameter; a missing or garbled
// value is the caller's input being wrong.
func queryInt64(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0, apperr.Input("%s is not a valid integer", name)
	}
	return v, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0, apperr.Input("%s is not a valid integer", name)
	}
	return v, nil
}
