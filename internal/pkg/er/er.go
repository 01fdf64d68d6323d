package er

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	InvalidArgumentCode Code = http.StatusBadRequest
	UnauthenticatedCode Code = http.StatusUnauthorized
	ForbiddenCode       Code = http.StatusForbidden
	NotFoundCode        Code = http.StatusNotFound
	ConflictCode        Code = http.StatusConflict
	InternalCode        Code = http.StatusInternalServerError
	UnavailableCode     Code = http.StatusServiceUnavailable
)

var ErrStrMap = map[Code]string{
	InvalidArgumentCode: "invalid argument",
	UnauthenticatedCode: "unauthenticated",
	ForbiddenCode:       "forbidden",
	NotFoundCode:        "not found",
	ConflictCode:        "conflict",
	InternalCode:        "internal server error",
	UnavailableCode:     "service unavailable",
}

// Error 帶狀態碼的業務錯誤, handler 直接映射成 http status
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// FromError 取出*Error, 其餘一律當作internal
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Code: InternalCode, Message: ErrStrMap[InternalCode], Err: err}
}

func IsCode(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
