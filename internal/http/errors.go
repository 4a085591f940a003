package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-api/internal/domain"
)

const serverErrorMsg = "Server error"

// respondError maps domain error kinds to statuses. Anything unrecognised
// is logged and answered with an opaque 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}

	msg, ok := domain.Message(err)
	if status == http.StatusInternalServerError || !ok {
		logEntry(c, h.logger).WithError(err).Error("request failed")
		status = http.StatusInternalServerError
		msg = serverErrorMsg
	}
	c.JSON(status, gin.H{"msg": msg})
}
