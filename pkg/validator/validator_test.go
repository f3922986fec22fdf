package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/subscriptions/pkg/validator"
)

type color string

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "john"),
			validator.OneOf("color", color("red"), []color{"red", "blue"}),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failing rule", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "   "),
			validator.OneOf("color", color("green"), []color{"red", "blue"}),
		)
		require.Error(t, err)

		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 2)
		assert.True(t, errs.Has("name"))
		assert.True(t, errs.Has("color"))
		assert.Equal(t, []string{"must be one of: red, blue"}, errs.Get("color"))
	})
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	t.Run("default message when empty", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
		assert.Nil(t, errs.Details())
	})

	t.Run("details group messages by field", func(t *testing.T) {
		t.Parallel()
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "plan", Message: "field is required"})
		errs.Add(validator.ValidationError{Field: "plan", Message: "too long"})
		errs.Add(validator.ValidationError{Field: "userId", Message: "field is required"})

		assert.Equal(t, map[string][]string{
			"plan":   {"field is required", "too long"},
			"userId": {"field is required"},
		}, errs.Details())
		assert.Contains(t, errs.Error(), "plan: too long")
	})

	t.Run("matches sentinel and survives wrapping", func(t *testing.T) {
		t.Parallel()
		base := validator.Apply(validator.Required("plan", ""))
		wrapped := errors.Join(errors.New("invalid input"), fmt.Errorf("create: %w", base))

		assert.ErrorIs(t, wrapped, validator.ErrValidationFailed)
		assert.True(t, validator.IsValidationError(wrapped))
		assert.Len(t, validator.ExtractValidationErrors(wrapped), 1)
		assert.False(t, validator.IsValidationError(errors.New("other")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestWhen(t *testing.T) {
	t.Parallel()

	skipped := validator.When(false, validator.Required("plan", ""))
	assert.True(t, skipped.Check())

	applied := validator.When(true, validator.Required("plan", ""))
	assert.False(t, applied.Check())
	assert.Equal(t, "plan", applied.Error.Field)
}
