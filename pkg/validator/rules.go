package validator

import (
	"fmt"
	"slices"
	"strings"
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        ErrFieldRequired.Error(),
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// OneOf validates that value is one of options.
func OneOf[T ~string](field string, value T, options []T) Rule {
	allowed := make([]string, len(options))
	for i, o := range options {
		allowed[i] = string(o)
	}
	return Rule{
		Check: func() bool {
			return slices.Contains(options, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowed,
			},
		},
	}
}

// When applies rule only if cond holds; otherwise the rule always passes.
func When(cond bool, rule Rule) Rule {
	check := rule.Check
	rule.Check = func() bool {
		return !cond || check()
	}
	return rule
}
