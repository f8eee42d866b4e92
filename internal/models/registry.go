package models

import (
	"github.com/marshallshelly/gravel/pkg/registry"
	"github.com/marshallshelly/gravel/pkg/schema"
)

// All returns every demo schema in dependency order.
func All() []*schema.Schema {
	return []*schema.Schema{User, Blog, Comment}
}

// RegisterAll registers every demo schema with r, or with the global registry when r
// is nil. Registering twice is harmless.
func RegisterAll(r *registry.Registry) error {
	for _, s := range All() {
		var err error
		if r == nil {
			err = registry.Register(s)
		} else {
			err = r.Register(s)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
