package handlers

import (
	"net/http"

	"carwash/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RespondError sends the uniform failure envelope.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// RespondDomainError maps domain errors onto the failure envelope. Validation
// failures carry the full list of violated-field messages; anything
// unrecognized is logged and reported generically.
func RespondDomainError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"errors":  domain.ValidationMessages(err),
		})
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "Booking not found")
	case domain.IsBadRequest(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		RespondError(c, http.StatusInternalServerError, "Server error")
	}
}
