package schema

import "fmt"

// Field describes a single column of a model.
type Field struct {
	Name       string
	ColumnType string
	PrimaryKey bool
	Kind       Kind

	// Default is used when the field has no value at save time.
	Default any
	// DefaultFunc takes precedence over Default and is called lazily, once per instance.
	DefaultFunc func() any
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// PrimaryKey marks the field as the table's primary key.
func PrimaryKey() FieldOption {
	return func(f *Field) {
		f.PrimaryKey = true
	}
}

// DDL overrides the column type, e.g. DDL("varchar(50)").
func DDL(columnType string) FieldOption {
	return func(f *Field) {
		f.ColumnType = columnType
	}
}

// Default sets a static default value.
func Default(v any) FieldOption {
	return func(f *Field) {
		f.Default = v
	}
}

// DefaultFunc sets a producer for the default value.
func DefaultFunc(fn func() any) FieldOption {
	return func(f *Field) {
		f.DefaultFunc = fn
	}
}

// NewField creates a field of the given kind.
func NewField(name string, kind Kind, opts ...FieldOption) Field {
	f := Field{
		Name:       name,
		Kind:       kind,
		ColumnType: DefaultColumnType(kind),
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// StringField creates a varchar(100) field.
func StringField(name string, opts ...FieldOption) Field {
	return NewField(name, KindString, opts...)
}

// IntegerField creates a bigint field.
func IntegerField(name string, opts ...FieldOption) Field {
	return NewField(name, KindInteger, opts...)
}

// FloatField creates a real field.
func FloatField(name string, opts ...FieldOption) Field {
	return NewField(name, KindFloat, opts...)
}

// BooleanField creates a boolean field.
func BooleanField(name string, opts ...FieldOption) Field {
	return NewField(name, KindBoolean, opts...)
}

// TextField creates a text field.
func TextField(name string, opts ...FieldOption) Field {
	return NewField(name, KindText, opts...)
}

// HasDefault reports whether the field can produce a default value.
func (f Field) HasDefault() bool {
	return f.DefaultFunc != nil || f.Default != nil
}

// DefaultValue returns the field's default, calling DefaultFunc if set.
// It returns nil when the field has no default.
func (f Field) DefaultValue() any {
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	return f.Default
}

func (f Field) String() string {
	return fmt.Sprintf("<%s, %s, %s>", f.Kind, f.Name, f.ColumnType)
}
