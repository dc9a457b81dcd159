package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable domain error codes. Callers and tests assert on these, never on
// message text.
const (
	CodeFormat              = "FORMAT_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeOutsideAvailability = "OUTSIDE_AVAILABILITY"
	CodeSlotTaken           = "SLOT_TAKEN"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeInvalidState        = "INVALID_STATE"
	CodeNotOwner            = "NOT_OWNER"
)

// DomainError is a failure of a booking-domain rule, as opposed to an
// infrastructure fault. It never indicates partial mutation: validation runs
// before the first write.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the domain code carried by err, or "" if err is not a
// DomainError.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HasCode reports whether err carries the given domain code.
func HasCode(err error, code string) bool {
	return ErrorCode(err) == code
}

var statusByCode = map[string]int{
	CodeFormat:              http.StatusBadRequest,
	CodeNotFound:            http.StatusNotFound,
	CodeOutsideAvailability: http.StatusBadRequest,
	CodeSlotTaken:           http.StatusConflict,
	CodeInvalidTransition:   http.StatusConflict,
	CodeInvalidState:        http.StatusBadRequest,
	CodeNotOwner:            http.StatusForbidden,
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONDomainError maps a domain error to its HTTP status and writes it.
// Non-domain errors become opaque 500s.
func JSONDomainError(c *gin.Context, err error) {
	var de *DomainError
	if errors.As(err, &de) {
		status, ok := statusByCode[de.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, ErrorResponse{Message: de.Message, Code: de.Code})
		return
	}
	GetLogger().Error("unexpected failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal Server Error",
		Details: "An unexpected error occurred. Please try again later.",
	})
}
