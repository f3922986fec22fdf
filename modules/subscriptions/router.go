package subscriptions

import (
	_ "embed"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/subscriptions/binder"
	"github.com/dmitrymomot/subscriptions/handler"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

// BasePath is where Router is expected to be mounted.
const BasePath = "/api/subscriptions"

//go:embed openapi.json
var openAPI []byte

// Router exposes the subscription lifecycle over HTTP.
//
//	r := chi.NewRouter()
//	r.Mount(subscriptions.BasePath, subscriptions.Router(svc, log))
func Router(svc subscription.Service, log *slog.Logger) chi.Router {
	if svc == nil {
		panic("subscriptions: Service is required")
	}
	h := &handlers{svc: svc}

	errs := handler.WithErrorHandler(handler.NewErrorHandler(log, classifyError))
	path := handler.WithBinders(binder.Path(chi.URLParam))
	body := handler.WithBinders(binder.JSON())

	r := chi.NewRouter()
	r.Post("/create", handler.Wrap(h.create, body, errs))
	r.Get("/active", handler.Wrap(h.listActive, errs))
	r.Get("/user/{userId}", handler.Wrap(h.listByUser, path, errs))
	r.Get("/{id}", handler.Wrap(h.get, path, errs))
	r.Patch("/{id}/cancel", handler.Wrap(h.cancel, path, errs))
	r.Patch("/{id}/update-plan", handler.Wrap(h.updatePlan, path, body, errs))
	r.Patch("/{id}/start-trial", handler.Wrap(h.startTrial, path, errs))
	r.Patch("/{id}/renew", handler.Wrap(h.renew, path, errs))
	return r
}

// Index answers the root liveness banner.
func Index() handler.HandlerFunc[struct{}] {
	return func(handler.Context, struct{}) handler.Response {
		return handler.Text("Subscription API is running")
	}
}

// APIDocs serves the OpenAPI document for Router.
func APIDocs() handler.HandlerFunc[struct{}] {
	return func(handler.Context, struct{}) handler.Response {
		return handler.Raw("application/json", openAPI)
	}
}
