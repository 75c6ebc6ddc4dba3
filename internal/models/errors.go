package models

import "errors"

// Validation and uniqueness errors raised by the registry aggregate.
// Callers classify with errors.Is; wrapped messages carry the offending
// field or value.
var (
	ErrEmptyField           = errors.New("required field is empty")
	ErrOutOfRange           = errors.New("value out of range")
	ErrDuplicateID          = errors.New("duplicate person id")
	ErrDuplicateHouseNumber = errors.New("duplicate house number")
)

// ErrHouseholdNotFound reports an operation addressed to a house number
// that is not in the neighborhood.
var ErrHouseholdNotFound = errors.New("household not found")
