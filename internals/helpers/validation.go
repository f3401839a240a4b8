// file: internals/helpers/validation.go
package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MapValidationErrors mengubah error dari validator menjadi peta
// field → daftar pesan untuk payload JsonValidationError.
// Error non-validator dipetakan ke key "_" apa adanya.
func MapValidationErrors(err error) map[string][]string {
	out := map[string][]string{}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		out["_"] = []string{err.Error()}
		return out
	}

	for _, fe := range vErrs {
		field := strings.ToLower(fe.Field())
		out[field] = append(out[field], validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return "wajib diisi"
	case "oneof":
		return "nilai harus salah satu dari: " + fe.Param()
	case "min":
		return "minimal " + fe.Param()
	case "max":
		return "maksimal " + fe.Param()
	case "datetime":
		return "format harus " + fe.Param()
	case "uuid":
		return "harus berupa UUID valid"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}
