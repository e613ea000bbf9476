package serializer

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AppErr maps a service error onto the response envelope. Expected failures
// carry their own status; anything else becomes a generic 500 with no detail
// beyond the development-mode error field.
func AppErr(err error) (int, Response) {
	status := apperr.StatusCode(err)
	if status == http.StatusInternalServerError {
		return status, Err(status, "internal error", err)
	}
	return status, Err(status, err.Error(), nil)
}
