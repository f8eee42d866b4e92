package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPrimaryKey is returned when no field is marked as the primary key.
	ErrNoPrimaryKey = errors.New("no primary key defined")

	// ErrMultiplePrimaryKeys is returned when more than one field is marked as the primary key.
	ErrMultiplePrimaryKeys = errors.New("multiple primary keys defined")

	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrEmptyFieldName is returned when a field has no name.
	ErrEmptyFieldName = errors.New("empty field name")

	// ErrEmptyTableName is returned when neither a table nor a model name is given.
	ErrEmptyTableName = errors.New("empty table name")
)

// SchemaError is returned by Define when a model definition is invalid.
type SchemaError struct {
	Model string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema error on model %s, field %q: %v", e.Model, e.Field, e.Err)
	}
	return fmt.Sprintf("schema error on model %s: %v", e.Model, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}
