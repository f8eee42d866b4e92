package model

import (
	"errors"
	"fmt"
)

var (
	// ErrAttributeNotFound is returned when a name is not a declared field of the model.
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrMissingPrimaryKey is returned by Save, Update and Remove on an instance without
	// a key.
	ErrMissingPrimaryKey = errors.New("primary key value not set")
)

// AttributeError reports access to an undeclared field.
type AttributeError struct {
	Model string
	Name  string
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("model %s has no attribute %q", e.Model, e.Name)
}

// Unwrap returns ErrAttributeNotFound.
func (e *AttributeError) Unwrap() error {
	return ErrAttributeNotFound
}
