package handler_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subscriptions/binder"
	"github.com/dmitrymomot/subscriptions/handler"
	"github.com/dmitrymomot/subscriptions/pkg/validator"
)

var errDomainMissing = errors.New("thing not found")

func domainClassifier(err error) (handler.ErrorInfo, bool) {
	if errors.Is(err, errDomainMissing) {
		return handler.ErrorInfo{Status: http.StatusNotFound, Code: "not_found", Message: err.Error()}, true
	}
	return handler.ErrorInfo{}, false
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	validation := validator.Apply(validator.Required("userId", ""))

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		details map[string]any
		level   string
	}{
		{
			name:    "classifier wins",
			err:     fmt.Errorf("lookup: %w", errDomainMissing),
			status:  http.StatusNotFound,
			code:    "not_found",
			message: "lookup: thing not found",
			level:   "WARN",
		},
		{
			name:    "validation errors",
			err:     errors.Join(errors.New("invalid input"), validation),
			status:  http.StatusBadRequest,
			code:    "validation_error",
			message: "validation failed",
			details: map[string]any{"userId": []any{"field is required"}},
			level:   "WARN",
		},
		{
			name:   "malformed json",
			err:    fmt.Errorf("%w: unexpected EOF", binder.ErrInvalidJSON),
			status: http.StatusBadRequest,
			code:   "validation_error",
			level:  "WARN",
		},
		{
			name:   "unsupported media type",
			err:    binder.ErrUnsupportedMediaType,
			status: http.StatusUnsupportedMediaType,
			code:   "validation_error",
			level:  "WARN",
		},
		{
			name:    "http error",
			err:     handler.ErrConflict,
			status:  http.StatusConflict,
			code:    "conflict",
			message: "Conflict",
			level:   "WARN",
		},
		{
			name:    "unknown error hides details",
			err:     errors.New("connection refused to 10.0.0.1"),
			status:  http.StatusInternalServerError,
			code:    "internal_error",
			message: "internal server error",
			level:   "ERROR",
		},
		{
			name:    "classified 5xx still hides message",
			err:     handler.ErrServiceUnavailable,
			status:  http.StatusServiceUnavailable,
			code:    "service_unavailable",
			message: "internal server error",
			level:   "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&logs, nil))
			h := handler.NewErrorHandler(log, domainClassifier)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/subscriptions/x", nil)
			h(handler.NewContext(rec, req), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			errBody, ok := decodeEnvelope(t, rec)["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.code, errBody["code"])
			if tt.message != "" {
				assert.Equal(t, tt.message, errBody["message"])
			}
			if tt.details != nil {
				assert.Equal(t, tt.details, errBody["details"])
			} else {
				assert.NotContains(t, errBody, "details")
			}

			assert.Contains(t, logs.String(), `"level":"`+tt.level+`"`)
			assert.Contains(t, logs.String(), `"path":"/api/subscriptions/x"`)
		})
	}
}
