package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jsreddy3/persona-backend/logic"
)

// respondError maps the logic error taxonomy onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, logic.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, logic.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, logic.ErrInsufficientCredits):
		ctx.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient credits"})
	case errors.Is(err, logic.ErrProviderFailure):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "message generation failed"})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("unhandled error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// streamErrorMessage picks the client-facing text for a terminal "error"
// SSE event; internals stay in the logs.
func streamErrorMessage(err error) string {
	switch {
	case errors.Is(err, logic.ErrValidation):
		return err.Error()
	case errors.Is(err, logic.ErrNotFound):
		return "conversation not found"
	case errors.Is(err, logic.ErrForbidden):
		return "forbidden"
	case errors.Is(err, logic.ErrInsufficientCredits):
		return "insufficient credits"
	case errors.Is(err, logic.ErrProviderFailure):
		return "message generation failed"
	default:
		log.Error().Err(err).Msg("stream terminated with unhandled error")
		return "internal server error"
	}
}
