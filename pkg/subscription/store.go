package subscription

import "context"

// Filter narrows FindMany results. Zero-value fields do not constrain the query.
type Filter struct {
	UserID     string
	ActiveOnly bool // only records with IsActive=true
}

// Store defines the interface for subscription persistence.
type Store interface {
	// Insert persists a new subscription and returns it with the assigned ID.
	Insert(ctx context.Context, sub *Subscription) (*Subscription, error)

	// FindByID retrieves a subscription by ID.
	// Returns ErrSubscriptionNotFound if no subscription exists.
	FindByID(ctx context.Context, id string) (*Subscription, error)

	// FindMany returns every subscription matching the filter, possibly none.
	FindMany(ctx context.Context, filter Filter) ([]*Subscription, error)

	// Save replaces all mutable fields of an existing subscription.
	// Returns ErrSubscriptionNotFound if the ID is unknown.
	Save(ctx context.Context, sub *Subscription) (*Subscription, error)
}
