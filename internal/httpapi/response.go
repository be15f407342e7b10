package httpapi

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the JSON envelope for every API reply.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

func success(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{Error: &ErrorInfo{Code: code, Message: message}})
}

// failErr maps service errors onto HTTP statuses. Unclassified errors are
// logged and reported without detail.
func (s *Server) failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, service.UserMessage(err))
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "This page is not available.")
	case errors.Is(err, service.ErrNotSignedIn):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "Please sign in.")
	case errors.Is(err, service.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "You do not have permission to do that.")
	default:
		s.requestLogger(c).Error("request failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, ErrCodeInternalError, "Something went wrong.")
	}
}
