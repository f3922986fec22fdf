package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrInvalidPath          = errors.New("invalid path parameter")

	// ErrBinderNotApplicable reports that a binder found nothing to bind.
	// Callers chaining binders skip it.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
