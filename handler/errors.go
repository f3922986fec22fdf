package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError pairs a status code with a machine-readable error code.
type HTTPError struct {
	Status int
	Code   string
}

func (e HTTPError) Error() string { return e.Code }

var (
	ErrNotFound           = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	ErrConflict           = HTTPError{Status: http.StatusConflict, Code: "conflict"}
	ErrInternal           = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error"}
	ErrServiceUnavailable = HTTPError{Status: http.StatusServiceUnavailable, Code: "service_unavailable"}
)
