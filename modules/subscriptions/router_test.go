package subscriptions_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subscriptions/handler"
	"github.com/dmitrymomot/subscriptions/modules/subscriptions"
	"github.com/dmitrymomot/subscriptions/pkg/subscription"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type apiResponse struct {
	Data  json.RawMessage      `json:"data"`
	Error *handler.ErrorDetail `json:"error"`
}

type testAPI struct {
	t      *testing.T
	clock  *fakeClock
	router http.Handler
}

func newTestAPI(t *testing.T, store subscription.Store) *testAPI {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)}
	if store == nil {
		store = subscription.NewMemoryStore()
	}
	svc := subscription.NewService(store, subscription.WithClock(clock))

	r := chi.NewRouter()
	r.Mount(subscriptions.BasePath, subscriptions.Router(svc, nil))
	r.Get("/", handler.Wrap(subscriptions.Index()))
	r.Get("/api-docs", handler.Wrap(subscriptions.APIDocs()))
	return &testAPI{t: t, clock: clock, router: r}
}

func (a *testAPI) do(method, path, body string) (int, apiResponse) {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func (a *testAPI) subscription(method, path, body string, wantStatus int) subscription.Subscription {
	a.t.Helper()
	code, resp := a.do(method, path, body)
	require.Equal(a.t, wantStatus, code, "error: %+v", resp.Error)
	var sub subscription.Subscription
	require.NoError(a.t, json.Unmarshal(resp.Data, &sub))
	return sub
}

func (a *testAPI) list(path string) []subscription.Subscription {
	a.t.Helper()
	code, resp := a.do(http.MethodGet, path, "")
	require.Equal(a.t, http.StatusOK, code, "error: %+v", resp.Error)
	var subs []subscription.Subscription
	require.NoError(a.t, json.Unmarshal(resp.Data, &subs))
	return subs
}

func (a *testAPI) create(userID, plan, duration string) subscription.Subscription {
	a.t.Helper()
	body := `{"userId":"` + userID + `","plan":"` + plan + `","duration":"` + duration + `"}`
	return a.subscription(http.MethodPost, "/api/subscriptions/create", body, http.StatusCreated)
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("monthly from Jan 31 bills on Feb 29", func(t *testing.T) {
		t.Parallel()
		api := newTestAPI(t, nil)
		sub := api.create("u1", "pro", "monthly")

		assert.NotEmpty(t, sub.ID)
		assert.Equal(t, "u1", sub.UserID)
		assert.Equal(t, subscription.StatusActive, sub.Status)
		assert.True(t, sub.IsActive)
		assert.False(t, sub.IsTrial)
		assert.True(t, sub.StartedAt.Equal(api.clock.Now()))
		assert.Equal(t, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC), sub.NextBillingDate.UTC())
		assert.Nil(t, sub.CanceledAt)
	})

	tests := []struct {
		name   string
		body   string
		status int
		fields []string
	}{
		{"missing fields", `{}`, http.StatusBadRequest, []string{"userId", "plan", "duration"}},
		{"empty body", "", http.StatusBadRequest, []string{"userId", "plan", "duration"}},
		{"invalid duration", `{"userId":"u1","plan":"pro","duration":"weekly"}`, http.StatusBadRequest, []string{"duration"}},
		{"malformed json", `{"userId":`, http.StatusBadRequest, nil},
		{"unknown field", `{"userId":"u1","plan":"pro","duration":"monthly","extra":1}`, http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := newTestAPI(t, nil)

			code, resp := api.do(http.MethodPost, "/api/subscriptions/create", tt.body)
			assert.Equal(t, tt.status, code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "validation_error", resp.Error.Code)
			for _, f := range tt.fields {
				assert.Contains(t, resp.Error.Details, f)
			}
			assert.Empty(t, api.list("/api/subscriptions/active"), "nothing persisted")
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	created := api.create("u1", "pro", "monthly")

	got := api.subscription(http.MethodGet, "/api/subscriptions/"+created.ID, "", http.StatusOK)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, subscription.StatusActive, got.Status)

	api.clock.Advance(32 * 24 * time.Hour)
	got = api.subscription(http.MethodGet, "/api/subscriptions/"+created.ID, "", http.StatusOK)
	assert.Equal(t, subscription.StatusExpired, got.Status)
	assert.False(t, got.IsActive)

	code, resp := api.do(http.MethodGet, "/api/subscriptions/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	created := api.create("u1", "pro", "yearly")

	canceled := api.subscription(http.MethodPatch, "/api/subscriptions/"+created.ID+"/cancel", "", http.StatusOK)
	assert.Equal(t, subscription.StatusCanceled, canceled.Status)
	assert.False(t, canceled.IsActive)
	require.NotNil(t, canceled.CanceledAt)

	api.clock.Advance(time.Hour)
	code, resp := api.do(http.MethodPatch, "/api/subscriptions/"+created.ID+"/cancel", "")
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "conflict", resp.Error.Code)

	got := api.subscription(http.MethodGet, "/api/subscriptions/"+created.ID, "", http.StatusOK)
	require.NotNil(t, got.CanceledAt)
	assert.True(t, canceled.CanceledAt.Equal(*got.CanceledAt), "canceledAt unchanged")

	code, _ = api.do(http.MethodPatch, "/api/subscriptions/missing/cancel", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdatePlan(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	created := api.create("u1", "basic", "monthly")
	path := "/api/subscriptions/" + created.ID + "/update-plan"

	got := api.subscription(http.MethodPatch, path, "", http.StatusOK)
	assert.Equal(t, "basic", got.Plan)
	assert.True(t, created.NextBillingDate.Equal(got.NextBillingDate))

	api.clock.Advance(24 * time.Hour)
	got = api.subscription(http.MethodPatch, path, `{"plan":"pro"}`, http.StatusOK)
	assert.Equal(t, "pro", got.Plan)
	assert.Equal(t, subscription.DurationMonthly, got.Duration)
	assert.True(t, created.NextBillingDate.Equal(got.NextBillingDate), "billing date untouched without duration")

	got = api.subscription(http.MethodPatch, path, `{"duration":"yearly"}`, http.StatusOK)
	assert.Equal(t, "pro", got.Plan)
	assert.Equal(t, subscription.DurationYearly, got.Duration)
	assert.Equal(t, time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC), got.NextBillingDate.UTC())

	code, resp := api.do(http.MethodPatch, path, `{"duration":"weekly"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "duration")

	code, _ = api.do(http.MethodPatch, "/api/subscriptions/missing/update-plan", `{"plan":"pro"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStartTrialAndRenew(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	created := api.create("u1", "pro", "yearly")
	base := "/api/subscriptions/" + created.ID

	trial := api.subscription(http.MethodPatch, base+"/start-trial", "", http.StatusOK)
	assert.True(t, trial.IsTrial)
	assert.True(t, trial.IsActive)
	assert.Equal(t, api.clock.Now().Add(7*24*time.Hour), trial.NextBillingDate.UTC())

	api.subscription(http.MethodPatch, base+"/cancel", "", http.StatusOK)
	renewed := api.subscription(http.MethodPatch, base+"/renew", "", http.StatusOK)
	assert.Equal(t, subscription.StatusActive, renewed.Status)
	assert.True(t, renewed.IsActive)
	assert.False(t, renewed.IsTrial)
	assert.Equal(t, time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC), renewed.NextBillingDate.UTC())

	for _, action := range []string{"start-trial", "renew"} {
		code, _ := api.do(http.MethodPatch, "/api/subscriptions/missing/"+action, "")
		assert.Equal(t, http.StatusNotFound, code, action)
	}
}

func TestLists(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)
	a := api.create("u1", "pro", "yearly")
	b := api.create("u1", "basic", "monthly")
	c := api.create("u2", "pro", "yearly")

	byUser := api.list("/api/subscriptions/user/u1")
	require.Len(t, byUser, 2)
	assert.Equal(t, a.ID, byUser[0].ID)
	assert.Equal(t, b.ID, byUser[1].ID)
	assert.Empty(t, api.list("/api/subscriptions/user/nobody"))

	api.clock.Advance(40 * 24 * time.Hour)

	active := api.list("/api/subscriptions/active")
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, c.ID, active[1].ID)

	got := api.subscription(http.MethodGet, "/api/subscriptions/"+b.ID, "", http.StatusOK)
	assert.Equal(t, subscription.StatusExpired, got.Status)
}

type brokenStore struct{ subscription.Store }

func (brokenStore) FindByID(context.Context, string) (*subscription.Subscription, error) {
	return nil, errors.New("dial tcp 10.0.0.5:27017: connection refused")
}

func (brokenStore) FindMany(context.Context, subscription.Filter) ([]*subscription.Subscription, error) {
	return nil, subscription.ErrStoreUnavailable
}

func TestStoreFailures(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, brokenStore{})

	code, resp := api.do(http.MethodGet, "/api/subscriptions/abc", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "10.0.0.5")

	code, resp = api.do(http.MethodGet, "/api/subscriptions/active", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "service_unavailable", resp.Error.Code)
}

func TestIndexAndDocs(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t, nil)

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Subscription API is running", rec.Body.String())

	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/{id}/update-plan")
}
