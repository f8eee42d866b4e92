// Package registry provides a central registry of model schemas.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/marshallshelly/gravel/pkg/schema"
)

// Registry is a thread-safe registry of schemas, looked up by model or table name.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*schema.Schema
	tables map[string]*schema.Schema
}

// NewRegistry creates a new Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]*schema.Schema),
		tables: make(map[string]*schema.Schema),
	}
}

// Register adds a schema. Registering the same schema twice is a no-op; registering
// a different schema under a taken model or table name is an error.
func (r *Registry) Register(s *schema.Schema) error {
	if s == nil {
		return fmt.Errorf("cannot register nil schema")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(s.Model())
	if existing, ok := r.models[key]; ok {
		if existing == s {
			return nil
		}
		return fmt.Errorf("model %s already registered", s.Model())
	}
	if existing, ok := r.tables[s.Table()]; ok {
		return fmt.Errorf("table %s already registered by model %s", s.Table(), existing.Model())
	}

	r.models[key] = s
	r.tables[s.Table()] = s

	return nil
}

// Define builds a schema with schema.Define and registers it.
func (r *Registry) Define(model string, fields ...schema.Field) (*schema.Schema, error) {
	s, err := schema.Define(model, fields...)
	if err != nil {
		return nil, err
	}
	if err := r.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves a schema by model name, case-insensitively.
func (r *Registry) Get(model string) (*schema.Schema, error) {
	r.mu.RLock()
	s, ok := r.models[strings.ToLower(model)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("model %s not registered", model)
	}

	return s, nil
}

// GetByTable retrieves a schema by table name.
func (r *Registry) GetByTable(table string) (*schema.Schema, error) {
	r.mu.RLock()
	s, ok := r.tables[table]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("table %s not registered", table)
	}

	return s, nil
}

// Lookup resolves name as a model name first, then as a table name.
func (r *Registry) Lookup(name string) (*schema.Schema, error) {
	if s, err := r.Get(name); err == nil {
		return s, nil
	}
	if s, err := r.GetByTable(name); err == nil {
		return s, nil
	}
	return nil, fmt.Errorf("no model or table named %s", name)
}

// All returns all registered schemas ordered by table name.
func (r *Registry) All() []*schema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := slices.Sorted(maps.Keys(r.tables))
	out := make([]*schema.Schema, 0, len(names))
	for _, name := range names {
		out = append(out, r.tables[name])
	}

	return out
}

// Names returns all registered model names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for _, s := range r.models {
		names = append(names, s.Model())
	}
	slices.Sort(names)

	return names
}

// Has checks if a model name is registered.
func (r *Registry) Has(model string) bool {
	r.mu.RLock()
	_, ok := r.models[strings.ToLower(model)]
	r.mu.RUnlock()

	return ok
}

// HasTable checks if a table name is registered.
func (r *Registry) HasTable(table string) bool {
	r.mu.RLock()
	_, ok := r.tables[table]
	r.mu.RUnlock()

	return ok
}

// Clear removes all registered schemas.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.models = make(map[string]*schema.Schema)
	r.tables = make(map[string]*schema.Schema)
}

// globalRegistry is the default global registry instance.
var globalRegistry = NewRegistry()

// Register registers a schema in the global registry.
func Register(s *schema.Schema) error {
	return globalRegistry.Register(s)
}

// MustRegister registers a schema in the global registry and panics on error.
// It is meant for init functions.
func MustRegister(s *schema.Schema) *schema.Schema {
	if err := globalRegistry.Register(s); err != nil {
		panic(err)
	}
	return s
}

// Get retrieves a schema by model name from the global registry.
func Get(model string) (*schema.Schema, error) {
	return globalRegistry.Get(model)
}

// GetByTable retrieves a schema by table name from the global registry.
func GetByTable(table string) (*schema.Schema, error) {
	return globalRegistry.GetByTable(table)
}

// Lookup resolves a model or table name in the global registry.
func Lookup(name string) (*schema.Schema, error) {
	return globalRegistry.Lookup(name)
}

// All returns all schemas from the global registry.
func All() []*schema.Schema {
	return globalRegistry.All()
}

// Names returns all model names from the global registry.
func Names() []string {
	return globalRegistry.Names()
}

// Clear clears the global registry.
func Clear() {
	globalRegistry.Clear()
}
