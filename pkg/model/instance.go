package model

import (
	"context"
	"fmt"
	"maps"

	"github.com/go-viper/mapstructure/v2"

	"github.com/marshallshelly/gravel/pkg/runtime"
	"github.com/marshallshelly/gravel/pkg/schema"
)

// TagName is the struct tag read by Decode and NewFrom.
const TagName = "db"

type unset struct{}

func (unset) String() string { return "<unset>" }

// Unset is returned by Get for a declared field that has no value and no default.
var Unset any = unset{}

// Instance is one row of a model. It is not safe for concurrent mutation.
type Instance struct {
	model  *Model
	values map[string]any
}

// Model returns the model the instance belongs to.
func (i *Instance) Model() *Model {
	return i.model
}

// Lookup returns the value of a declared field and whether it is set.
// An undeclared name returns an *AttributeError.
func (i *Instance) Lookup(name string) (any, bool, error) {
	if !i.model.schema.HasField(name) {
		return nil, false, &AttributeError{Model: i.model.Name(), Name: name}
	}
	v, ok := i.values[name]
	return v, ok, nil
}

// Get returns the value of a declared field, or Unset when it has never been assigned.
// Get never resolves defaults, so an unassigned field with a default is also Unset;
// use GetOrDefault to produce and store the default.
func (i *Instance) Get(name string) (any, error) {
	v, ok, err := i.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Unset, nil
	}
	return v, nil
}

// GetOrDefault returns the field's value, resolving and storing its default when
// unset. A field without value or default yields nil.
func (i *Instance) GetOrDefault(name string) (any, error) {
	f, ok := i.model.schema.Field(name)
	if !ok {
		return nil, &AttributeError{Model: i.model.Name(), Name: name}
	}
	return i.resolve(f), nil
}

// Set assigns a declared field.
func (i *Instance) Set(name string, v any) error {
	if !i.model.schema.HasField(name) {
		return &AttributeError{Model: i.model.Name(), Name: name}
	}
	i.values[name] = v
	return nil
}

// Unassign removes a field's value so Get reports Unset again.
func (i *Instance) Unassign(name string) error {
	if !i.model.schema.HasField(name) {
		return &AttributeError{Model: i.model.Name(), Name: name}
	}
	delete(i.values, name)
	return nil
}

// PrimaryKey returns the primary-key value, or nil when unset.
func (i *Instance) PrimaryKey() any {
	return i.values[i.model.schema.PrimaryKey().Name]
}

// Values returns a copy of every assigned field.
func (i *Instance) Values() map[string]any {
	return maps.Clone(i.values)
}

// resolve returns the field's value. When unset, the default is produced once and
// stored so later reads and saves see the same value.
func (i *Instance) resolve(f schema.Field) any {
	if v, ok := i.values[f.Name]; ok {
		return v
	}
	if !f.HasDefault() {
		return nil
	}

	v := f.DefaultValue()
	i.values[f.Name] = v
	i.model.logger.Debug("using default value", "model", i.model.Name(), "field", f.Name)
	return v
}

// args resolves every ordinary field in declaration order followed by the primary key.
func (i *Instance) args() []any {
	s := i.model.schema
	fields := s.Fields()

	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		args = append(args, i.resolve(f))
	}
	return append(args, i.resolve(s.PrimaryKey()))
}

// Save inserts the instance, resolving defaults first. A primary key that is still
// nil after resolution fails with ErrMissingPrimaryKey and nothing is written.
// Anything other than exactly one affected row is returned as a *runtime.WriteError.
func (i *Instance) Save(ctx context.Context) error {
	args := i.args()
	if args[len(args)-1] == nil {
		return fmt.Errorf("save %s: %w", i.model.Name(), ErrMissingPrimaryKey)
	}
	return i.write(ctx, i.model.schema.InsertSQL(), args)
}

// Update writes every field of an existing row, matched by primary key.
func (i *Instance) Update(ctx context.Context) error {
	if _, ok := i.values[i.model.schema.PrimaryKey().Name]; !ok {
		return fmt.Errorf("update %s: %w", i.model.Name(), ErrMissingPrimaryKey)
	}
	query := i.model.schema.UpdateSQL()
	return i.write(ctx, query, i.args())
}

// Remove deletes the row matched by the instance's primary key.
func (i *Instance) Remove(ctx context.Context) error {
	pk, ok := i.values[i.model.schema.PrimaryKey().Name]
	if !ok {
		return fmt.Errorf("remove %s: %w", i.model.Name(), ErrMissingPrimaryKey)
	}
	return i.write(ctx, i.model.schema.DeleteSQL(), []any{pk})
}

func (i *Instance) write(ctx context.Context, query string, args []any) error {
	affected, err := i.model.exec.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected != 1 {
		return &runtime.WriteError{Query: query, Affected: affected}
	}
	return nil
}

// Decode copies the instance's values into out, a pointer to a struct with `db` tags.
// Values are converted weakly, so a numeric column read back as text still decodes
// into an int field.
func (i *Instance) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(i.values); err != nil {
		return fmt.Errorf("failed to decode %s: %w", i.model.Name(), err)
	}
	return nil
}

// As decodes inst into a new T.
func As[T any](inst *Instance) (T, error) {
	var out T
	err := inst.Decode(&out)
	return out, err
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s%v", i.model.Name(), i.values)
}
