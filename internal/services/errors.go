package services

import (
	"errors"
	"fmt"
)

// Authorization errors.
var (
	ErrMissingCredential   = errors.New("missing or malformed authorization header")
	ErrMalformedCredential = errors.New("invalid token")
	ErrExpiredCredential   = errors.New("token has expired")
	ErrUnknownUser         = errors.New("user not found")
	ErrForbidden           = errors.New("forbidden: insufficient role")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrEmailTaken          = errors.New("email already registered")
)

// Order workflow errors.
var (
	ErrEmptyCart             = errors.New("order must contain at least one item")
	ErrStoreUnavailable      = errors.New("store not found or inactive")
	ErrProductUnavailable    = errors.New("product unavailable")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrInvalidDeliveryMethod = errors.New("invalid delivery method")
	ErrIllegalTransition     = errors.New("illegal status transition")
	ErrTransitionConflict    = errors.New("order status changed concurrently")
	ErrNotFound              = errors.New("not found")
)

// Catalog and review errors.
var (
	ErrStoreNotCreated = errors.New("store not created yet")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// ProductUnavailableError names the requested product that could not be
// resolved to an active product of the order's store.
type ProductUnavailableError struct {
	ProductID string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s not found, inactive or not part of this store", e.ProductID)
}

func (e *ProductUnavailableError) Unwrap() error {
	return ErrProductUnavailable
}

// invalidInput wraps ErrInvalidInput with a field-specific message.
func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
