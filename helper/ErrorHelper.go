package helper

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError is an error that knows which HTTP status and message to answer with.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func BadRequest(msg string) *AppError   { return &AppError{Status: http.StatusBadRequest, Message: msg} }
func Unauthorized(msg string) *AppError { return &AppError{Status: http.StatusUnauthorized, Message: msg} }
func Forbidden(msg string) *AppError    { return &AppError{Status: http.StatusForbidden, Message: msg} }
func NotFound(msg string) *AppError     { return &AppError{Status: http.StatusNotFound, Message: msg} }
func Conflict(msg string) *AppError     { return &AppError{Status: http.StatusConflict, Message: msg} }

// Internal hides err from the caller; RespondError logs it.
func Internal(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// StatusOf returns the HTTP status an error maps to.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// RespondError writes err as {"message": ...}. Anything that is not an
// AppError is treated as internal.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	if appErr.Status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.Status, gin.H{"message": appErr.Message})
}
