package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"garage-api/internal/domain"
	"garage-api/internal/service"
)

const internalErrorMessage = "internal server error"

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrMissingToken),
		errors.Is(err, service.ErrExpiredToken),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the text sent to clients. Token errors collapse to their
// sentinel so parser details stay server side.
func messageFor(err error) string {
	switch {
	case errors.Is(err, service.ErrExpiredToken):
		return service.ErrExpiredToken.Error()
	case errors.Is(err, service.ErrInvalidToken):
		return service.ErrInvalidToken.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "resource not found"
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	return err.Error()
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		c.JSON(status, gin.H{"error": internalErrorMessage})
		return
	}
	c.JSON(status, gin.H{"error": messageFor(err)})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
