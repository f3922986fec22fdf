package binder

import (
	"fmt"
	"net/http"
)

// Path binds URL path parameters to fields tagged `path:"name"` using
// extractor, e.g. chi.URLParam. Untagged fields are ignored. Empty values
// leave the field untouched.
//
//	type getRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/{id}", handler.Wrap(h, handler.WithBinders(binder.Path(chi.URLParam))))
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor is nil", ErrInvalidPath)
		}
		rv, err := structValue(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			name, ok := fieldTag(rt.Field(i), "path")
			if !ok || !field.CanSet() {
				continue
			}
			value := extractor(r, name)
			if value == "" {
				continue
			}
			if err := setField(field, value); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidPath, name, err)
			}
		}
		return nil
	}
}
