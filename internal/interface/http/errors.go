package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bankhub/banking-api/internal/application"
	"github.com/bankhub/banking-api/pkg/response"
)

// renderError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500 and gets logged; taxonomy
// errors surface their own message verbatim.
func renderError(c *gin.Context, logger *logrus.Logger, err error) {
	var insufficient *application.InsufficientFundsError
	switch {
	case errors.Is(err, application.ErrAccountNotFound),
		errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrUserAlreadyExists),
		errors.Is(err, application.ErrInvalidAmount),
		errors.Is(err, application.ErrWrongCurrency):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &insufficient):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("unhandled service error")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
