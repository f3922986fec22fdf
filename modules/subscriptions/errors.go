package subscriptions

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/subscriptions/handler"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
	"github.com/dmitrymomot/subscriptions/pkg/validator"
)

// classifyError maps lifecycle errors onto API error codes.
func classifyError(err error) (handler.ErrorInfo, bool) {
	switch {
	case errors.Is(err, subscription.ErrInvalidInput):
		info := handler.ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    "validation_error",
			Message: subscription.ErrInvalidInput.Error(),
		}
		if ve := validator.ExtractValidationErrors(err); ve != nil {
			info.Details = ve.Details()
		}
		return info, true
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return handler.ErrorInfo{Status: http.StatusNotFound, Code: handler.ErrNotFound.Code, Message: err.Error()}, true
	case errors.Is(err, subscription.ErrAlreadyCanceled), errors.Is(err, subscription.ErrInvalidTransition):
		return handler.ErrorInfo{Status: http.StatusConflict, Code: handler.ErrConflict.Code, Message: err.Error()}, true
	case errors.Is(err, subscription.ErrStoreUnavailable):
		return handler.ErrorInfo{Status: http.StatusServiceUnavailable, Code: handler.ErrServiceUnavailable.Code}, true
	case errors.Is(err, subscription.ErrStoreFailure):
		return handler.ErrorInfo{Status: http.StatusInternalServerError, Code: handler.ErrInternal.Code}, true
	}
	return handler.ErrorInfo{}, false
}
