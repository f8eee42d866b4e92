// Package model binds schemas to a database and persists model instances.
//
// A Model pairs an immutable schema.Schema with an Executor (normally a *runtime.DB).
// Instances are keyed bags of column values validated against that schema:
//
//	users := model.Bind(db, UserSchema)
//	if err := users.CreateTable(ctx); err != nil { ... }
//
//	u, _ := users.New(map[string]any{"name": "zhaojiuhui", "password": "111111"})
//	if err := u.Save(ctx); err != nil { ... }
//
//	found, ok, err := users.Find(ctx, u.PrimaryKey())
package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"

	"github.com/marshallshelly/gravel/pkg/runtime"
	"github.com/marshallshelly/gravel/pkg/schema"
)

// Executor runs statements written with ? markers. *runtime.DB and *runtime.Conn
// both satisfy it.
type Executor interface {
	Query(ctx context.Context, query string, limit int, args ...any) ([]runtime.Row, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// Model is a schema bound to an executor.
type Model struct {
	schema *schema.Schema
	exec   Executor
	logger *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the model's logger. By default the executor's logger is used when
// it exposes one.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// Bind binds s to exec.
func Bind(exec Executor, s *schema.Schema, opts ...Option) *Model {
	m := &Model{schema: s, exec: exec}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		if l, ok := exec.(interface{ Logger() *slog.Logger }); ok {
			m.logger = l.Logger()
		} else {
			m.logger = slog.New(slog.DiscardHandler)
		}
	}
	return m
}

// Schema returns the bound schema.
func (m *Model) Schema() *schema.Schema {
	return m.schema
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.schema.Model()
}

// New creates an unsaved instance. Every key must be a declared field.
func (m *Model) New(values map[string]any) (*Instance, error) {
	inst := &Instance{model: m, values: make(map[string]any, len(values))}
	for name, v := range values {
		if err := inst.Set(name, v); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// MustNew is like New but panics on an undeclared field.
func (m *Model) MustNew(values map[string]any) *Instance {
	inst, err := m.New(values)
	if err != nil {
		panic(err)
	}
	return inst
}

// NewFrom creates an instance from a struct whose fields carry `db:"column"` tags.
// Fields tagged `db:"column,omitempty"` are left unset when zero, so their defaults
// apply at save time.
func (m *Model) NewFrom(v any) (*Instance, error) {
	values := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: TagName,
		Result:  &values,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("failed to read %T into %s: %w", v, m.Name(), err)
	}
	return m.New(values)
}

// fromRow builds a persisted instance from a fetched row.
func (m *Model) fromRow(row runtime.Row) (*Instance, error) {
	inst := &Instance{model: m, values: make(map[string]any, len(row))}
	for col, v := range row {
		if !m.schema.HasField(col) {
			return nil, fmt.Errorf("unexpected column in %s row: %w", m.Name(), &AttributeError{Model: m.Name(), Name: col})
		}
		inst.values[col] = v
	}
	return inst, nil
}

// Find fetches the row whose primary key equals pk. A missing row is reported as
// found == false with a nil error.
func (m *Model) Find(ctx context.Context, pk any) (*Instance, bool, error) {
	rows, err := m.exec.Query(ctx, m.schema.SelectByKeySQL(), 1, pk)
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		m.logger.Debug("row not found", "model", m.Name(), "pk", pk)
		return nil, false, nil
	}

	inst, err := m.fromRow(rows[0])
	if err != nil {
		return nil, false, err
	}
	return inst, true, nil
}

// FindAll fetches every row matching opts.
func (m *Model) FindAll(ctx context.Context, opts ...QueryOption) ([]*Instance, error) {
	q, err := newQuery(opts)
	if err != nil {
		return nil, err
	}

	sql, args := q.build(m.schema.SelectSQL(), true)
	rows, err := m.exec.Query(ctx, sql, 0, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*Instance, 0, len(rows))
	for _, row := range rows {
		inst, err := m.fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Count returns the number of rows matching opts. Only Where applies.
func (m *Model) Count(ctx context.Context, opts ...QueryOption) (int64, error) {
	q, err := newQuery(opts)
	if err != nil {
		return 0, err
	}

	sql, args := q.build(m.schema.CountSQL(), false)
	rows, err := m.exec.Query(ctx, sql, 1, args...)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt64(rows[0]["_num_"])
}

// CreateTable creates the model's table if it does not exist.
func (m *Model) CreateTable(ctx context.Context) error {
	_, err := m.exec.Exec(ctx, m.schema.CreateSQL())
	return err
}

// DropAndRecreateTable drops the table, losing every row, and creates it again.
// It exists for development and test setup.
func (m *Model) DropAndRecreateTable(ctx context.Context) error {
	if _, err := m.exec.Exec(ctx, m.schema.DropSQL()); err != nil {
		return err
	}
	m.logger.Warn("dropped table", "model", m.Name(), "table", m.schema.Table())
	return m.CreateTable(ctx)
}
