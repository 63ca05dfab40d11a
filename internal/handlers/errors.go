package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synergy-dev/synergy/internal/domain"
	"github.com/synergy-dev/synergy/pkg/logger"
)

// respondError maps domain errors to HTTP codes in one place so every route
// answers the same way: validation and bad assignees are 422, missing ids
// 404, non-members 403, conflicting emails 409. Anything unrecognised is
// logged and answered with a generic 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAssignee):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateEmail):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log := logger.Get()
		log.Error().
			Err(err).
			Str("method", ctx.Request.Method).
			Str("path", ctx.FullPath()).
			Msg("unhandled error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
