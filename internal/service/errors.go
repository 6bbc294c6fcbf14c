package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPersistence        = errors.New("persistence failure")

	ErrEmptyCart        = fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	ErrMissingAddress   = fmt.Errorf("%w: address is required", ErrInvalidInput)
	ErrMissingStartDate = fmt.Errorf("%w: work start date is required", ErrInvalidInput)
	ErrStartDateInPast  = fmt.Errorf("%w: work start date must be in the future", ErrInvalidInput)
	ErrEmailTaken       = fmt.Errorf("%w: email already registered", ErrInvalidInput)

	// ErrSelectionUnavailable reports a referenced service or add-on that
	// no longer exists or was deactivated since the cart was built.
	ErrSelectionUnavailable = fmt.Errorf("%w: selection no longer available, please re-select", ErrNotFound)
)
