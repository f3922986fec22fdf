package subscription

import "time"

// ApplyExpiry evaluates the lazy-expiry rule against sub at now.
//
// An active subscription whose NextBillingDate is before now is returned with
// IsActive=false and Status=expired, and changed is true. Any other subscription
// is returned as-is. Persisting the change is up to the caller.
func ApplyExpiry(sub Subscription, now time.Time) (Subscription, bool) {
	if !sub.IsActive || !sub.IsPastDue(now) {
		return sub, false
	}
	if err := transition(&sub, EventExpire); err != nil {
		return sub, false
	}
	sub.IsActive = false
	return sub, true
}
