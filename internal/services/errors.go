package services

import "errors"

var (
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrInvalidPolicy   = errors.New("invalid planning policy")
	ErrUnknownGroupBy  = errors.New("unknown group by")
	ErrMissingSheet    = errors.New("missing sheet")
)

// IsValidation reports whether err was caused by bad caller input rather
// than a failing dependency.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidPolicy) ||
		errors.Is(err, ErrUnknownGroupBy) ||
		errors.Is(err, ErrMissingSheet)
}
