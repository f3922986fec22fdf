package subscriptions

import (
	"net/http"

	"github.com/dmitrymomot/subscriptions/handler"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

type createRequest struct {
	UserID   string `json:"userId"`
	Plan     string `json:"plan"`
	Duration string `json:"duration"`
}

type idRequest struct {
	ID string `path:"id"`
}

type userRequest struct {
	UserID string `path:"userId"`
}

type updatePlanRequest struct {
	ID       string `path:"id" json:"-"`
	Plan     string `json:"plan"`
	Duration string `json:"duration"`
}

type handlers struct {
	svc subscription.Service
}

func (h *handlers) create(ctx handler.Context, req createRequest) handler.Response {
	sub, err := h.svc.Create(ctx, subscription.CreateParams{
		UserID:   req.UserID,
		Plan:     req.Plan,
		Duration: subscription.Duration(req.Duration),
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(sub, handler.WithJSONStatus(http.StatusCreated))
}

func (h *handlers) get(ctx handler.Context, req idRequest) handler.Response {
	return respond(h.svc.Get(ctx, req.ID))
}

func (h *handlers) listActive(ctx handler.Context, _ struct{}) handler.Response {
	return respond(h.svc.ListActive(ctx))
}

func (h *handlers) listByUser(ctx handler.Context, req userRequest) handler.Response {
	return respond(h.svc.ListByUser(ctx, req.UserID))
}

func (h *handlers) cancel(ctx handler.Context, req idRequest) handler.Response {
	return respond(h.svc.Cancel(ctx, req.ID))
}

func (h *handlers) updatePlan(ctx handler.Context, req updatePlanRequest) handler.Response {
	return respond(h.svc.UpdatePlan(ctx, req.ID, subscription.PlanUpdate{
		Plan:     req.Plan,
		Duration: subscription.Duration(req.Duration),
	}))
}

func (h *handlers) startTrial(ctx handler.Context, req idRequest) handler.Response {
	return respond(h.svc.StartTrial(ctx, req.ID))
}

func (h *handlers) renew(ctx handler.Context, req idRequest) handler.Response {
	return respond(h.svc.Renew(ctx, req.ID))
}

func respond[T any](v T, err error) handler.Response {
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(v)
}
