package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/subscriptions/binder"
	"github.com/dmitrymomot/subscriptions/pkg/logger"
	"github.com/dmitrymomot/subscriptions/pkg/validator"
)

// ErrorInfo is the classified form of an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
	Details map[string][]string
}

// Classifier maps domain errors to ErrorInfo. ok=false defers to the next
// classifier and finally to the built-in rules.
type Classifier func(err error) (info ErrorInfo, ok bool)

const internalMessage = "internal server error"

// NewErrorHandler returns an ErrorHandler that classifies err, logs it (4xx at
// Warn, 5xx at Error) and writes a JSON error envelope. 5xx responses never
// expose err's text.
func NewErrorHandler(log *slog.Logger, classifiers ...Classifier) ErrorHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(ctx Context, err error) {
		info := classify(err, classifiers)
		r := ctx.Request()

		level := slog.LevelWarn
		if info.Status >= http.StatusInternalServerError {
			level = slog.LevelError
			info.Message = internalMessage
			info.Details = nil
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Component("http"),
			logger.Error(err),
			slog.Int("status", info.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		resp := JSONError(info.Status, ErrorDetail{Code: info.Code, Message: info.Message, Details: info.Details})
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to write error response", logger.Error(renderErr))
		}
	}
}

func classify(err error, classifiers []Classifier) ErrorInfo {
	for _, c := range classifiers {
		if info, ok := c(err); ok {
			return info
		}
	}

	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    "validation_error",
			Message: "validation failed",
			Details: ve.Details(),
		}
	}

	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrorInfo{Status: http.StatusRequestEntityTooLarge, Code: "validation_error", Message: err.Error()}
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrorInfo{Status: http.StatusUnsupportedMediaType, Code: "validation_error", Message: err.Error()}
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidPath):
		return ErrorInfo{Status: http.StatusBadRequest, Code: "validation_error", Message: err.Error()}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{Status: httpErr.Status, Code: httpErr.Code, Message: http.StatusText(httpErr.Status)}
	}

	return ErrorInfo{Status: http.StatusInternalServerError, Code: ErrInternal.Code, Message: internalMessage}
}
