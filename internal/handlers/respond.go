package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railbook/train-booking-backend/internal/apperrors"
)

// respondError maps an error's kind to a stable HTTP status. Internal causes
// are never leaked to the client.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusInternalServerError
	message := err.Error()
	switch kind {
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindSeatUnavailable, apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindInternal:
		message = "Internal server error"
	}

	c.JSON(status, gin.H{
		"error":   string(kind),
		"message": message,
	})
}
