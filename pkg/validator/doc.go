// Package validator provides small declarative validation rules.
//
// A Rule pairs a boolean Check with the ValidationError reported when the check
// fails. Apply evaluates rules in order and aggregates failures into a
// ValidationErrors value, which satisfies the error interface so several field
// problems can be returned at once.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("userId", req.UserID),
//	    validator.Required("plan", req.Plan),
//	    validator.OneOf("duration", req.Duration, subscription.Durations),
//	)
//	if err != nil {
//	    fields := validator.ExtractValidationErrors(err).Details()
//	    // fields["duration"] == []string{"must be one of: monthly, yearly"}
//	}
//
// Rules carry a TranslationKey and TranslationValues so a presentation layer
// can localise messages; Message holds the English fallback.
package validator
