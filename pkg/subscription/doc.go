// Package subscription implements the subscription lifecycle: creation, lookup,
// cancellation, plan changes, trials and renewals, with lazy expiry on reads.
//
// # Architecture
//
//   - Service: lifecycle operations, constructed with NewService(store, opts...)
//   - Store: persistence contract (Insert, FindByID, FindMany, Save)
//   - Clock: injected time source so tests control "now"
//   - ApplyExpiry: pure lazy-expiry rule shared by every read path
//   - NextBillingDate: calendar rule for monthly and yearly billing
//
// Store implementations: NewMemoryStore for tests and local runs, NewMongoStore
// for MongoDB documents, and NewPostgresStore for a PostgreSQL table whose
// schema ships as goose migrations in Migrations. NewBreakerStore decorates
// any of them with a circuit breaker.
//
// # Lifecycle
//
// Create opens an active subscription billed from now. Cancel moves it to
// canceled and records CanceledAt; canceling twice fails with ErrAlreadyCanceled.
// StartTrial activates a 7-day trial unconditionally. Renew starts a new billing
// period from now using the stored duration and reactivates the subscription
// from any status, including canceled. UpdatePlan replaces the plan label and,
// when a duration is given, restarts the billing period from now.
//
// # Lazy expiry
//
// There is no background sweep. Get, ListByUser and ListActive evaluate
// ApplyExpiry for each record they read: an active subscription whose
// NextBillingDate has passed is flipped to expired, persisted, and returned in
// its new state (ListActive leaves it out of the result). A past-due record
// that is never read stays active in storage.
//
// # Billing dates
//
// Monthly and yearly periods keep the day of month and clamp to the last day
// of the target month: Jan 31 renews on Feb 28 (Feb 29 in leap years) and a
// yearly subscription started on Feb 29 renews on Feb 28.
//
// # Concurrency
//
// Operations are read-modify-write against the store with no version check,
// so concurrent writes to the same subscription resolve as last writer wins.
//
// # Error Handling
//
// Validation failures wrap ErrInvalidInput together with
// validator.ValidationErrors. Missing records return ErrSubscriptionNotFound and
// a second cancel returns ErrAlreadyCanceled. Any other store error is wrapped
// with ErrStoreFailure; its details are meant for logs, not for API clients.
//
// # Usage
//
//	store := subscription.NewMemoryStore()
//	svc := subscription.NewService(store, subscription.WithLogger(log))
//
//	sub, err := svc.Create(ctx, subscription.CreateParams{
//		UserID:   "user-1",
//		Plan:     "pro",
//		Duration: subscription.DurationMonthly,
//	})
//	if errors.Is(err, subscription.ErrInvalidInput) {
//		// 400
//	}
package subscription
