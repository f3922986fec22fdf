package subscription

import (
	"slices"
	"time"
)

// Subscription is a user's subscription record.
// IsActive is a denormalized "currently entitled" flag kept in sync with Status.
type Subscription struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Plan            string     `json:"plan"`
	Duration        Duration   `json:"duration"`
	Status          Status     `json:"status"`
	IsTrial         bool       `json:"isTrial"`
	IsActive        bool       `json:"isActive"`
	StartedAt       time.Time  `json:"startedAt"`
	NextBillingDate time.Time  `json:"nextBillingDate"`
	CanceledAt      *time.Time `json:"canceledAt,omitempty"` // set only on cancellation
}

// IsCanceled reports whether the subscription was explicitly canceled.
func (s *Subscription) IsCanceled() bool {
	return s.Status == StatusCanceled
}

// IsPastDue reports whether the billing date has passed at the given time.
func (s *Subscription) IsPastDue(now time.Time) bool {
	return s.NextBillingDate.Before(now)
}

// clone returns a deep copy so stores never share CanceledAt pointers with callers.
func (s *Subscription) clone() *Subscription {
	if s == nil {
		return nil
	}
	c := *s
	if s.CanceledAt != nil {
		t := *s.CanceledAt
		c.CanceledAt = &t
	}
	return &c
}

// Duration is the billing interval unit.
type Duration string

const (
	DurationMonthly Duration = "monthly"
	DurationYearly  Duration = "yearly"
)

// Durations lists every supported billing interval.
var Durations = []Duration{DurationMonthly, DurationYearly}

func (d Duration) Valid() bool {
	return slices.Contains(Durations, d)
}

func (d Duration) String() string {
	return string(d)
}

// Status is the lifecycle state of a subscription.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusPaused   Status = "paused"
	StatusExpired  Status = "expired"
)

func (s Status) String() string {
	return string(s)
}
