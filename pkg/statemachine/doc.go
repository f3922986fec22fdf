// Package statemachine provides immutable, generic transition tables.
//
// A Machine maps (state, event) pairs to target states. It keeps no current
// state, which suits records loaded from storage: load, Fire, persist.
// PermitAll covers every state but an exclusion list, so records carrying a
// state the table does not name still get a defined outcome.
//
//	type Status string
//	type Event string
//
//	var lifecycle = statemachine.NewBuilder[Status, Event]().
//		Permit("expire", "expired", "active").
//		PermitAll("cancel", "canceled", "canceled").
//		PermitAll("renew", "active").
//		MustBuild()
//
//	to, err := lifecycle.Fire(sub.Status, "cancel")
//	if errors.Is(err, statemachine.ErrNoTransition) {
//		// not permitted from sub.Status
//	}
package statemachine
