package delivery

import (
	"errors"
	"net/http"

	"pharmacare/internal/domain"

	"github.com/gin-gonic/gin"
)

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// respondError writes err with the status it maps to. Server-side failures
// are reported with fallback only, so store details never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	statusCode := mapErrorToStatus(err)
	if statusCode == http.StatusInternalServerError {
		ErrorResponse(c, statusCode, fallback)
		return
	}
	ErrorResponse(c, statusCode, err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
