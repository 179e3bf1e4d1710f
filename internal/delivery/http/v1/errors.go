package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danilloubr/workplace-tasks-challenge/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

// abortWithServiceError is the single place domain errors become HTTP
// responses. Anything unrecognized is a 500 with a generic body so
// internal details never leak to the caller.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		abort(c, newAPIError(http.StatusUnauthorized, err.Error()))
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		abort(c, newAPIError(http.StatusNotFound, err.Error()))
	case errors.Is(err, services.ErrForbidden):
		abort(c, newAPIError(http.StatusForbidden, err.Error()))
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrSelfDelete),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidRole):
		abort(c, newBadRequestError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
