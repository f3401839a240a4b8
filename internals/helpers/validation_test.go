// file: internals/helpers/validation_test.go
package helper

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapValidationErrors_FieldMessages(t *testing.T) {
	type payload struct {
		Kind            string `validate:"required,oneof=one_to_one group demo"`
		DurationMinutes int    `validate:"required,min=15"`
	}

	err := validator.New().Struct(payload{})
	require.Error(t, err)

	out := MapValidationErrors(err)

	require.Contains(t, out, "kind")
	assert.Equal(t, []string{"wajib diisi"}, out["kind"])
	require.Contains(t, out, "durationminutes")
	assert.Equal(t, []string{"wajib diisi"}, out["durationminutes"])
}

func TestMapValidationErrors_OneofParam(t *testing.T) {
	type payload struct {
		Outcome string `validate:"oneof=completed incomplete no_show"`
	}

	err := validator.New().Struct(payload{Outcome: "maybe"})
	require.Error(t, err)

	out := MapValidationErrors(err)

	require.Contains(t, out, "outcome")
	assert.Equal(t, []string{"nilai harus salah satu dari: completed incomplete no_show"}, out["outcome"])
}

func TestMapValidationErrors_NonValidatorError(t *testing.T) {
	out := MapValidationErrors(errors.New("payload rusak"))

	assert.Equal(t, map[string][]string{"_": {"payload rusak"}}, out)
}
