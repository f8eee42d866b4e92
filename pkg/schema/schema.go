// Package schema turns model definitions into immutable table schemas and the
// SQL templates used to persist them.
package schema

import (
	"strings"
)

// Schema is the frozen description of one model's table.
// A Schema is never modified after Define returns and is safe for concurrent use.
type Schema struct {
	model      string
	table      string
	primaryKey Field
	fields     []Field
	index      map[string]int

	createSQL      string
	dropSQL        string
	selectSQL      string
	selectByKeySQL string
	insertSQL      string
	updateSQL      string
	deleteSQL      string
	countSQL       string
}

// Define builds the schema for model. The table name is the model name in lower case.
func Define(model string, fields ...Field) (*Schema, error) {
	return DefineTable(model, strings.ToLower(model), fields...)
}

// MustDefine is like Define but panics on error. It is meant for package-level model
// variables.
func MustDefine(model string, fields ...Field) *Schema {
	s, err := Define(model, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// DefineTable builds the schema for model stored in table.
func DefineTable(model, table string, fields ...Field) (*Schema, error) {
	if table == "" {
		return nil, &SchemaError{Model: model, Err: ErrEmptyTableName}
	}

	s := &Schema{
		model:  model,
		table:  table,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	var pk *Field
	for i := range fields {
		f := fields[i]
		if f.Name == "" {
			return nil, &SchemaError{Model: model, Err: ErrEmptyFieldName}
		}
		if _, ok := s.index[f.Name]; ok {
			return nil, &SchemaError{Model: model, Field: f.Name, Err: ErrDuplicateField}
		}
		if f.ColumnType == "" {
			f.ColumnType = DefaultColumnType(f.Kind)
		}

		if f.PrimaryKey {
			if pk != nil {
				return nil, &SchemaError{Model: model, Field: f.Name, Err: ErrMultiplePrimaryKeys}
			}
			pk = &f
			s.index[f.Name] = -1
			continue
		}

		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	if pk == nil {
		return nil, &SchemaError{Model: model, Err: ErrNoPrimaryKey}
	}
	s.primaryKey = *pk

	s.createSQL = buildCreateTable(s)
	s.dropSQL = buildDropTable(s)
	s.selectSQL = buildSelect(s)
	s.selectByKeySQL = s.selectSQL + " where " + quote(s.primaryKey.Name) + " = ?"
	s.insertSQL = buildInsert(s)
	s.updateSQL = buildUpdate(s)
	s.deleteSQL = buildDelete(s)
	s.countSQL = buildCount(s)

	return s, nil
}

// Model returns the declared model name.
func (s *Schema) Model() string { return s.model }

// Table returns the table name.
func (s *Schema) Table() string { return s.table }

// PrimaryKey returns the primary-key field.
func (s *Schema) PrimaryKey() Field { return s.primaryKey }

// Fields returns the ordinary fields in declaration order, excluding the primary key.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Columns returns every column name in select order: primary key first.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, len(s.fields)+1)
	cols = append(cols, s.primaryKey.Name)
	for _, f := range s.fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// Field looks up a field, including the primary key, by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	if i < 0 {
		return s.primaryKey, true
	}
	return s.fields[i], true
}

// HasField reports whether name is a declared field.
func (s *Schema) HasField(name string) bool {
	_, ok := s.index[name]
	return ok
}

// CreateSQL returns the CREATE TABLE IF NOT EXISTS statement.
func (s *Schema) CreateSQL() string { return s.createSQL }

// DropSQL returns the DROP TABLE IF EXISTS statement.
func (s *Schema) DropSQL() string { return s.dropSQL }

// SelectSQL returns the base select over every column, without a WHERE clause.
func (s *Schema) SelectSQL() string { return s.selectSQL }

// SelectByKeySQL returns the select filtered by primary key, taking one argument.
func (s *Schema) SelectByKeySQL() string { return s.selectByKeySQL }

// InsertSQL returns the insert statement: ordinary fields first, primary key last.
func (s *Schema) InsertSQL() string { return s.insertSQL }

// UpdateSQL returns the update statement: ordinary fields, then the primary key.
func (s *Schema) UpdateSQL() string { return s.updateSQL }

// DeleteSQL returns the delete-by-primary-key statement.
func (s *Schema) DeleteSQL() string { return s.deleteSQL }

// CountSQL returns the base count statement, without a WHERE clause.
// The count is returned in the column named _num_.
func (s *Schema) CountSQL() string { return s.countSQL }
