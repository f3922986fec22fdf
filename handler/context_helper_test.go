package handler_test

import (
	"context"
	"net/http"
)

func contextWithValue(r *http.Request, key, value any) context.Context {
	return context.WithValue(r.Context(), key, value)
}
