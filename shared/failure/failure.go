// Package failure carries the HTTP status an error should be answered with.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that already knows its response code.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ForbiddenError is answered by RBAC when the route does not admit the caller's role.
var ForbiddenError = New(http.StatusForbidden, "You don't have the required permissions")

func New(code int, msg string) *Failure {
	return &Failure{Code: code, Message: msg}
}

func (e *Failure) Error() string {
	return e.Message
}

// fromError keeps nil as nil so callers can wrap unconditionally.
func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// Forbidden is for callers that are signed in but act outside their role or ownership.
func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

// Conflict covers overlapping stays and duplicate emails.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

// GetCode digs through wrapped errors; anything unknown is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries the given response code.
func Is(err error, code int) bool {
	return GetCode(err) == code
}
