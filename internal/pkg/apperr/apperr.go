package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Exception is an error with an HTTP status attached. Services return these for
// expected failures; handlers map anything else to 500.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func Validation(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusBadRequest}
}

func NotFound(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusNotFound}
}

func Permission(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusForbidden}
}

// State marks an entity not being in the state an operation requires,
// e.g. reviewing a task that is not completed. Reported as 400.
func State(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusBadRequest}
}

func Conflict(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusConflict}
}

func Unauthorized(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: http.StatusUnauthorized}
}

func Validationf(format string, args ...interface{}) *Exception {
	return Validation(fmt.Sprintf(format, args...))
}
