package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/gin-gonic/gin"
)

// errorMessages maps the sentinel errors a route expects to the message
// it answers with.
type errorMessages map[error]string

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// fail answers with the route's message for a known error and with a
// generic 500 otherwise. Details of unknown errors are only logged.
func (h *Handler) fail(c *gin.Context, err error, msgs errorMessages) {
	for sentinel, msg := range msgs {
		if errors.Is(err, sentinel) {
			respondMessage(c, statusFor(sentinel), msg)
			return
		}
	}

	h.logger.Error(c.Request.Context(), "request failed",
		"error", err, "path", c.FullPath(), "request_id", c.GetString(requestIDKey))
	respondMessage(c, http.StatusInternalServerError, msgServerError)
}
