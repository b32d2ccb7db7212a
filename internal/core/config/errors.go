package config

import (
	"errors"
	"fmt"
)

// Lookup and validation errors
var (
	ErrValidation  = errors.New("invalid configuration")
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
)

// ValidationError identifies the offending key of an invalid configuration.
type ValidationError struct {
	Key      string
	Expected Kind
	// Actual is the shape found, empty when the key is missing
	Actual string
	Reason   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Expected != "" && e.Actual != "":
		return fmt.Sprintf("%s: key %q: expected %s, got %s", ErrValidation, e.Key, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("%s: key %q: %s", ErrValidation, e.Key, e.Reason)
	}
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func keyNotFound(key string) error {
	return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
}

func keyEmpty(key string) error {
	return fmt.Errorf("%w: %q", ErrKeyEmpty, key)
}
