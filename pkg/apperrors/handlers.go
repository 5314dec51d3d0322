package apperrors

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// GenericErrorMessage is what clients see for any 5xx.
const GenericErrorMessage = "An error occurred processing your request"

var debugMode atomic.Bool

// SetDebug controls whether internal error text reaches clients.
func SetDebug(debug bool) {
	debugMode.Store(debug)
}

type ErrorResponse struct {
	Error *AppError `json:"error"`
}

type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "server error",
			"code", appErr.Code,
			"domain", appErr.Domain,
			"error", appErr.Unwrap(),
		)
		if !h.Debug {
			cp := *appErr
			cp.Message = GenericErrorMessage
			cp.Details = nil
			appErr = &cp
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: debugMode.Load()}
	handler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Message flattens err into a status and a client-safe message.
// 5xx errors never leak their text.
func Message(err error) (int, string) {
	appErr, ok := AsAppError(err)
	if !ok {
		return http.StatusInternalServerError, GenericErrorMessage
	}
	if !appErr.ClientError() {
		return appErr.HTTPCode, GenericErrorMessage
	}
	return appErr.HTTPCode, appErr.Message
}
