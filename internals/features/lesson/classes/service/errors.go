// file: internals/features/lesson/classes/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Taksonomi error domain penjadwalan. Controller memetakan ke status HTTP:
// ValidationError → 400, ConflictError → 409, ErrInvalidTransition → 409,
// ErrConcurrency → 409 (caller disarankan retry).
var (
	ErrInvalidTransition = errors.New("transisi status kelas tidak valid")
	ErrConcurrency       = errors.New("kalah race penjadwalan, silakan ulangi request")
)

// ValidationError: input penjadwalan tidak memenuhi aturan bisnis.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError: jadwal tutor bentrok; membawa id kelas yang bentrok
// untuk pesan diagnostik ke caller.
type ConflictError struct {
	ConflictingClassID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("jadwal bentrok dengan kelas %s", e.ConflictingClassID)
}
