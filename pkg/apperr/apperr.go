package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

/*
	Коды стабильны: "NN-SSSS", NN — версия таблицы, SSSS — номер.
	Клиент маппит код на локализованное сообщение, message — только подсказка.
*/

const (
	CodeInputMissing      = "10-0001"
	CodeBadPayload        = "10-0002"
	CodeBadCredentials    = "10-0101"
	CodeUnauthenticated   = "10-0102"
	CodeAccountDisabled   = "10-0201"
	CodeNoPasswordAuth    = "10-0202"
	CodeForbidden         = "10-0203"
	CodeTooManyAttempts   = "10-0204"
	CodeNotFound          = "10-0301"
	CodeDuplicateEmail    = "10-0401"
	CodeDuplicateUsername = "10-0402"
	CodeConflict          = "10-0403"
	CodeInternal          = "10-0501"
)

var statusByCode = map[string]int{
	CodeInputMissing:      http.StatusBadRequest,
	CodeBadPayload:        http.StatusBadRequest,
	CodeBadCredentials:    http.StatusUnauthorized,
	CodeUnauthenticated:   http.StatusUnauthorized,
	CodeAccountDisabled:   http.StatusForbidden,
	CodeNoPasswordAuth:    http.StatusForbidden,
	CodeForbidden:         http.StatusForbidden,
	CodeTooManyAttempts:   http.StatusForbidden,
	CodeNotFound:          http.StatusNotFound,
	CodeDuplicateEmail:    http.StatusConflict,
	CodeDuplicateUsername: http.StatusConflict,
	CodeConflict:          http.StatusConflict,
	CodeInternal:          http.StatusInternalServerError,
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	cause   error
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap keeps the cause for operator logs; it is never serialized to the client.
func Wrap(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// From maps any error to a typed one; unknown errors become Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func Is(err error, code string) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}

// WriteHTTP sends the envelope; the wrapped cause stays server-side.
func WriteHTTP(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status())
	if err := json.NewEncoder(w).Encode(e); err != nil {
		return
	}
}
