package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/subscriptions/pkg/logger"
	"github.com/dmitrymomot/subscriptions/pkg/validator"
)

// Service defines the public interface for the subscription lifecycle.
// Every read path applies the lazy-expiry rule before returning.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Subscription, error)
	Get(ctx context.Context, id string) (*Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*Subscription, error)
	ListActive(ctx context.Context) ([]*Subscription, error)

	Cancel(ctx context.Context, id string) (*Subscription, error)
	UpdatePlan(ctx context.Context, id string, update PlanUpdate) (*Subscription, error)
	StartTrial(ctx context.Context, id string) (*Subscription, error)
	Renew(ctx context.Context, id string) (*Subscription, error)
}

// CreateParams holds the fields required to open a subscription.
type CreateParams struct {
	UserID   string
	Plan     string
	Duration Duration
}

// PlanUpdate holds optional plan changes. Empty fields are left untouched.
type PlanUpdate struct {
	Plan     string
	Duration Duration
}

const defaultConcurrency = 8

type service struct {
	store       Store
	clock       Clock
	log         *slog.Logger
	concurrency int
}

// NewService creates a new Service backed by store.
// Panics if store is nil to fail fast during initialization.
func NewService(store Store, opts ...ServiceOption) Service {
	if store == nil {
		panic("subscription: Store is required")
	}

	s := &service{
		store:       store,
		clock:       SystemClock(),
		log:         slog.New(slog.DiscardHandler),
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With(logger.Component("subscription"))
	return s
}

// Create validates params and persists a new active subscription.
func (s *service) Create(ctx context.Context, params CreateParams) (*Subscription, error) {
	if err := validator.Apply(
		validator.Required("userId", params.UserID),
		validator.Required("plan", params.Plan),
		validator.Required("duration", string(params.Duration)),
		validator.When(params.Duration != "", validator.OneOf("duration", params.Duration, Durations)),
	); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	now := s.clock.Now()
	next, err := NextBillingDate(params.Duration, now)
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	sub, err := s.store.Insert(ctx, &Subscription{
		UserID:          params.UserID,
		Plan:            params.Plan,
		Duration:        params.Duration,
		Status:          StatusActive,
		IsTrial:         false,
		IsActive:        true,
		StartedAt:       now,
		NextBillingDate: next,
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.log.InfoContext(ctx, "subscription created",
		logger.SubscriptionID(sub.ID),
		logger.UserID(sub.UserID),
		slog.String("plan", sub.Plan),
		slog.String("duration", sub.Duration.String()),
	)
	return sub, nil
}

// Get returns the subscription with the given ID after the lazy-expiry check.
func (s *service) Get(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	sub, _, err = s.expire(ctx, sub, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// ListByUser returns all subscriptions of a user, each passed through the lazy-expiry check.
func (s *service) ListByUser(ctx context.Context, userID string) ([]*Subscription, error) {
	subs, err := s.store.FindMany(ctx, Filter{UserID: userID})
	if err != nil {
		return nil, storeError(err)
	}

	checked, _, err := s.expireAll(ctx, subs)
	if err != nil {
		return nil, err
	}
	return checked, nil
}

// ListActive returns subscriptions flagged active in storage that are still active
// after the lazy-expiry check. Expired ones are persisted and left out.
func (s *service) ListActive(ctx context.Context) ([]*Subscription, error) {
	subs, err := s.store.FindMany(ctx, Filter{ActiveOnly: true})
	if err != nil {
		return nil, storeError(err)
	}

	checked, expired, err := s.expireAll(ctx, subs)
	if err != nil {
		return nil, err
	}

	active := make([]*Subscription, 0, len(checked))
	for i, sub := range checked {
		if !expired[i] {
			active = append(active, sub)
		}
	}
	return active, nil
}

// Cancel marks the subscription canceled. Lazy expiry is not applied first,
// so an expired subscription can still be canceled.
func (s *service) Cancel(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.IsCanceled() {
		return nil, ErrAlreadyCanceled
	}
	if err := transition(sub, EventCancel); err != nil {
		return nil, errors.Join(ErrInvalidTransition, err)
	}

	now := s.clock.Now()
	sub.IsActive = false
	sub.CanceledAt = &now

	sub, err = s.save(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subscription canceled", logger.SubscriptionID(sub.ID), logger.UserID(sub.UserID))
	return sub, nil
}

// UpdatePlan replaces the plan and/or duration. A new duration restarts the
// billing period from now, not from the previous billing date.
func (s *service) UpdatePlan(ctx context.Context, id string, update PlanUpdate) (*Subscription, error) {
	if err := validator.Apply(
		validator.When(update.Duration != "", validator.OneOf("duration", update.Duration, Durations)),
	); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Plan != "" {
		sub.Plan = update.Plan
	}
	if update.Duration != "" {
		next, err := NextBillingDate(update.Duration, s.clock.Now())
		if err != nil {
			return nil, errors.Join(ErrInvalidInput, err)
		}
		sub.Duration = update.Duration
		sub.NextBillingDate = next
	}

	sub, err = s.save(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subscription plan updated",
		logger.SubscriptionID(sub.ID),
		slog.String("plan", sub.Plan),
		slog.String("duration", sub.Duration.String()),
	)
	return sub, nil
}

// StartTrial activates a 7-day trial, overwriting any prior state.
func (s *service) StartTrial(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transition(sub, EventStartTrial); err != nil {
		return nil, errors.Join(ErrInvalidTransition, err)
	}

	now := s.clock.Now()
	sub.IsTrial = true
	sub.IsActive = true
	sub.StartedAt = now
	sub.NextBillingDate = TrialEndsAt(now)

	sub, err = s.save(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subscription trial started",
		logger.SubscriptionID(sub.ID),
		slog.Time("next_billing_date", sub.NextBillingDate),
	)
	return sub, nil
}

// Renew starts a new billing period from now using the stored duration.
// It is allowed from any status and reactivates canceled subscriptions.
func (s *service) Renew(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := NextBillingDate(sub.Duration, s.clock.Now())
	if err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	previous := sub.Status
	if err := transition(sub, EventRenew); err != nil {
		return nil, errors.Join(ErrInvalidTransition, err)
	}
	sub.NextBillingDate = next
	sub.IsActive = true
	sub.IsTrial = false

	sub, err = s.save(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "subscription renewed",
		logger.SubscriptionID(sub.ID),
		logger.Status(previous),
		slog.Time("next_billing_date", sub.NextBillingDate),
	)
	return sub, nil
}

func (s *service) find(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return sub, nil
}

func (s *service) save(ctx context.Context, sub *Subscription) (*Subscription, error) {
	saved, err := s.store.Save(ctx, sub)
	if err != nil {
		return nil, storeError(err)
	}
	return saved, nil
}

// expire applies the lazy-expiry rule and persists the record when it changed.
func (s *service) expire(ctx context.Context, sub *Subscription, now time.Time) (*Subscription, bool, error) {
	updated, changed := ApplyExpiry(*sub, now)
	if !changed {
		return sub, false, nil
	}

	saved, err := s.save(ctx, &updated)
	if err != nil {
		return nil, false, err
	}

	s.log.InfoContext(ctx, "subscription expired",
		logger.SubscriptionID(saved.ID),
		logger.UserID(saved.UserID),
		slog.Time("next_billing_date", saved.NextBillingDate),
	)
	return saved, true, nil
}

// expireAll runs expire for each record concurrently, keeping input order.
// expired[i] reports whether subs[i] transitioned during this call.
func (s *service) expireAll(ctx context.Context, subs []*Subscription) ([]*Subscription, []bool, error) {
	now := s.clock.Now()
	out := make([]*Subscription, len(subs))
	expired := make([]bool, len(subs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, sub := range subs {
		g.Go(func() error {
			checked, changed, err := s.expire(gctx, sub, now)
			if err != nil {
				return err
			}
			out[i] = checked
			expired[i] = changed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return out, expired, nil
}

// storeError passes not-found through and wraps everything else as a store failure.
func storeError(err error) error {
	if errors.Is(err, ErrSubscriptionNotFound) {
		return ErrSubscriptionNotFound
	}
	return errors.Join(ErrStoreFailure, err)
}
