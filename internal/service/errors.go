package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/showrunner/internal/domain"
)

var (
	// ErrValidation matches every ValidationError.
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("not permitted")
	ErrNotFound       = domain.ErrNotFound
	ErrNotSignedIn    = errors.New("not signed in")
	ErrNoTourSelected = errors.New("no tour selected")
)

// ValidationError carries the message shown to the user when input is
// rejected. No mutation is applied when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func forbidden(action string) error {
	return fmt.Errorf("%s: %w", action, ErrForbidden)
}

// UserMessage is the text to show for err: the validation message when
// there is one, otherwise the error string.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
