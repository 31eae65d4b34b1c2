package entity

import (
	"fmt"
	"sort"
	"sync"

	"github.com/M0rdr3d/lisk/pkg/config"
	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/filters"
)

type Registry struct {
	mu       sync.RWMutex
	entities map[string]*Entity
}

func NewRegistry() *Registry {
	return &Registry{
		entities: map[string]*Entity{},
	}
}

func (r *Registry) Register(e *Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entities[e.Name]; exists {
		return fmt.Errorf("%w: %s", errs.ErrEntityAlreadyExists, e.Name)
	}
	r.entities[e.Name] = e
	return nil
}

func (r *Registry) Get(name string) (*Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entities[name]
	if !ok {
		return nil, errs.ErrEntityNotFound
	}
	return e, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromConfig builds an entity from its declaration, resolving serializers by name.
func FromConfig(conf config.EntityConfig, generator *filters.Generator) (*Entity, error) {
	e := NewEntity(conf.Name, conf.Table, generator)

	for _, field := range conf.Fields {
		serializer, ok := filters.LookupSerializer(field.Serializer)
		if !ok {
			return nil, fmt.Errorf("field %s.%s: unknown serializer '%s'", conf.Name, field.Name, field.Serializer)
		}

		err := e.AddField(field.Name, FieldOptions{
			FieldName:  field.FieldName,
			Filter:     field.Filter,
			Serializer: serializer,
			Condition:  field.Condition,
		})
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", conf.Name, field.Name, err)
		}
	}

	return e, nil
}

func RegistryFromConfig(confs []config.EntityConfig, generator *filters.Generator) (*Registry, error) {
	registry := NewRegistry()
	for _, conf := range confs {
		e, err := FromConfig(conf, generator)
		if err != nil {
			return nil, err
		}

		if err := registry.Register(e); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
