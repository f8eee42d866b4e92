package schema

import (
	"errors"
	"strings"
	"testing"
)

func userFields() []Field {
	return []Field{
		StringField("id", PrimaryKey(), DDL("varchar(50)")),
		StringField("name"),
		StringField("password"),
	}
}

func TestDefine_TableName(t *testing.T) {
	s, err := Define("User", userFields()...)
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	if s.Table() != "user" {
		t.Errorf("expected table name 'user', got '%s'", s.Table())
	}
	if s.Model() != "User" {
		t.Errorf("expected model name 'User', got '%s'", s.Model())
	}

	custom, err := DefineTable("User", "users", userFields()...)
	if err != nil {
		t.Fatalf("DefineTable failed: %v", err)
	}
	if custom.Table() != "users" {
		t.Errorf("expected table name 'users', got '%s'", custom.Table())
	}
}

func TestDefine_SeparatesPrimaryKey(t *testing.T) {
	s := MustDefine("User",
		StringField("name"),
		StringField("id", PrimaryKey()),
		StringField("password"),
	)

	if s.PrimaryKey().Name != "id" {
		t.Errorf("expected primary key 'id', got '%s'", s.PrimaryKey().Name)
	}

	fields := s.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 ordinary fields, got %d", len(fields))
	}
	if fields[0].Name != "name" || fields[1].Name != "password" {
		t.Errorf("declaration order not preserved: %v", fields)
	}

	want := []string{"id", "name", "password"}
	if got := s.Columns(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestDefine_FieldsIsACopy(t *testing.T) {
	s := MustDefine("User", userFields()...)

	fields := s.Fields()
	fields[0].Name = "mutated"

	if s.Fields()[0].Name != "name" {
		t.Error("mutating the returned slice changed the schema")
	}
}

func TestDefine_Errors(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		table   string
		fields  []Field
		wantErr error
	}{
		{
			name:    "no primary key",
			model:   "User",
			table:   "user",
			fields:  []Field{StringField("name")},
			wantErr: ErrNoPrimaryKey,
		},
		{
			name:  "multiple primary keys",
			model: "User",
			table: "user",
			fields: []Field{
				StringField("id", PrimaryKey()),
				StringField("uid", PrimaryKey()),
			},
			wantErr: ErrMultiplePrimaryKeys,
		},
		{
			name:  "duplicate field",
			model: "User",
			table: "user",
			fields: []Field{
				StringField("id", PrimaryKey()),
				StringField("name"),
				TextField("name"),
			},
			wantErr: ErrDuplicateField,
		},
		{
			name:    "empty field name",
			model:   "User",
			table:   "user",
			fields:  []Field{StringField("", PrimaryKey())},
			wantErr: ErrEmptyFieldName,
		},
		{
			name:    "empty table name",
			model:   "",
			table:   "",
			fields:  []Field{StringField("id", PrimaryKey())},
			wantErr: ErrEmptyTableName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefineTable(tt.model, tt.table, tt.fields...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("expected *SchemaError, got %T", err)
			}
		})
	}
}

func TestMustDefine_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustDefine to panic without a primary key")
		}
	}()

	MustDefine("Broken", StringField("name"))
}

func TestSchema_Field(t *testing.T) {
	s := MustDefine("User", userFields()...)

	pk, ok := s.Field("id")
	if !ok || !pk.PrimaryKey {
		t.Errorf("expected primary key field, got %v (ok=%v)", pk, ok)
	}

	name, ok := s.Field("name")
	if !ok || name.ColumnType != "varchar(100)" {
		t.Errorf("expected varchar(100) name field, got %v (ok=%v)", name, ok)
	}

	if _, ok := s.Field("email"); ok {
		t.Error("expected undeclared field lookup to fail")
	}
	if s.HasField("email") {
		t.Error("HasField reported an undeclared field")
	}
}
