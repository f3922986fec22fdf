// Package handler provides typed HTTP handlers with JSON envelope responses.
//
// A HandlerFunc receives a request struct populated by binders and returns a
// Response. Wrap adapts it to http.HandlerFunc:
//
//	type getRequest struct {
//		ID string `path:"id"`
//	}
//
//	func get(ctx handler.Context, req getRequest) handler.Response {
//		sub, err := svc.Get(ctx, req.ID)
//		if err != nil {
//			return handler.Fail(err)
//		}
//		return handler.JSON(sub)
//	}
//
//	r.Get("/{id}", handler.Wrap(get,
//		handler.WithBinders(binder.Path(chi.URLParam)),
//		handler.WithErrorHandler(errHandler),
//	))
//
// # Responses
//
// JSON writes {"data": ...}; JSONError writes {"error": {"code", "message",
// "details"}}. Text, Raw and Empty cover non-JSON bodies. Fail defers to the
// ErrorHandler.
//
// # Errors
//
// NewErrorHandler classifies errors through the supplied Classifier functions,
// then validator.ValidationErrors (400 validation_error), binder errors, and
// HTTPError. Anything else is a 500 internal_error with a generic message;
// the original error is only logged.
package handler
