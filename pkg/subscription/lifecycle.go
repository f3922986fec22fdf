package subscription

import "github.com/dmitrymomot/subscriptions/pkg/statemachine"

// Event is a lifecycle operation that changes Status.
type Event string

const (
	EventCancel     Event = "cancel"
	EventExpire     Event = "expire"
	EventRenew      Event = "renew"
	EventStartTrial Event = "start_trial"
)

// lifecycle is the status transition table. Canceled is the only state that
// cannot be canceled. Every other entry applies to any stored status, including
// values outside Statuses; whether expiry is due is decided by ApplyExpiry.
var lifecycle = statemachine.NewBuilder[Status, Event]().
	PermitAll(EventCancel, StatusCanceled, StatusCanceled).
	PermitAll(EventExpire, StatusExpired).
	PermitAll(EventRenew, StatusActive).
	PermitAll(EventStartTrial, StatusActive).
	MustBuild()

// CanTransition reports whether event is permitted from status.
func CanTransition(from Status, event Event) bool {
	return lifecycle.CanFire(from, event)
}

// transition moves sub to the status reached on event.
func transition(sub *Subscription, event Event) error {
	to, err := lifecycle.Fire(sub.Status, event)
	if err != nil {
		return err
	}
	sub.Status = to
	return nil
}
