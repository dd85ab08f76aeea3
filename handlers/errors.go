package handlers

import (
	"errors"
	"net/http"

	"firstresponse/services/auth"
	"firstresponse/services/firstaid"
	"firstresponse/services/rationing"
	"firstresponse/services/route"
	"firstresponse/services/scanner"
	"firstresponse/services/settings"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByErr = []struct {
	err    error
	status int
}{
	// Form validation.
	{auth.ErrMissingCredentials, http.StatusBadRequest},
	{auth.ErrIncompleteOTP, http.StatusBadRequest},
	{firstaid.ErrEmptyQuestion, http.StatusBadRequest},
	{rationing.ErrMissingFields, http.StatusBadRequest},
	{rationing.ErrInvalidGroup, http.StatusBadRequest},
	{rationing.ErrNegativeAmount, http.StatusBadRequest},
	{route.ErrMissingFields, http.StatusBadRequest},
	{scanner.ErrNoImage, http.StatusBadRequest},
	{scanner.ErrInvalidImage, http.StatusBadRequest},
	{settings.ErrUnsupportedLanguage, http.StatusBadRequest},
	{scanner.ErrTooLarge, http.StatusRequestEntityTooLarge},

	// Rejected by the API.
	{auth.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrInvalidOTP, http.StatusUnauthorized},
	{auth.ErrNoPendingLogin, http.StatusConflict},

	// API failed or unreachable.
	{auth.ErrBackendUnavailable, http.StatusBadGateway},
	{upstream.ErrUnavailable, http.StatusBadGateway},
	{firstaid.ErrGuidanceFailed, http.StatusBadGateway},
	{rationing.ErrAnalysisFailed, http.StatusBadGateway},
	{route.ErrRouteFailed, http.StatusBadGateway},
	{scanner.ErrScanFailed, http.StatusBadGateway},
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var notFound *route.LocationNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusUnprocessableEntity
	}
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": message}. Unknown errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, utils.ErrorResponse{Error: "Internal Server Error"})
		return
	}
	msg := err.Error()
	for _, m := range statusByErr {
		if errors.Is(err, m.err) {
			msg = m.err.Error()
			break
		}
	}
	utils.JSONError(c, status, msg, "")
}
