package entity

import (
	"fmt"
	"sync"

	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/filters"
	"github.com/M0rdr3d/lisk/pkg/query"
	"github.com/M0rdr3d/lisk/pkg/resources"
)

type FieldOptions struct {
	// FieldName is the column backing the field. Defaults to the field name.
	FieldName string
	// Filter is left empty for columns that are not filterable.
	Filter     resources.FilterType
	Serializer filters.Serializer
	// Condition replaces the generated condition of CUSTOM filters.
	Condition *string
}

type Field struct {
	Name      string
	FieldName string
	Filter    resources.FilterType
}

// Entity describes a table and the filter vocabulary exposed over its fields.
type Entity struct {
	Name  string
	Table string

	generator   *filters.Generator
	mu          sync.RWMutex
	fields      []Field
	filters     resources.Filters
	filterTypes map[string]resources.FilterType
	aliases     map[string]string
}

func NewEntity(name string, table string, generator *filters.Generator) *Entity {
	if generator == nil {
		generator = filters.NewGenerator(filters.DefaultCatalog())
	}

	return &Entity{
		Name:        name,
		Table:       table,
		generator:   generator,
		filters:     resources.Filters{},
		filterTypes: map[string]resources.FilterType{},
		aliases:     map[string]string{},
	}
}

func (e *Entity) AddField(name string, opts FieldOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, f := range e.fields {
		if f.Name == name {
			return fmt.Errorf("%w: %s.%s", errs.ErrFieldAlreadyDefined, e.Name, name)
		}
	}

	fieldName := opts.FieldName
	if fieldName == "" {
		fieldName = name
	}

	if opts.Filter != "" {
		if opts.Filter == resources.CustomFilterType && opts.Condition != nil {
			if err := checkCondition(name, *opts.Condition); err != nil {
				return fmt.Errorf("%s.%s: %w", e.Name, name, err)
			}
		}

		generated, err := e.generator.Generate(opts.Filter, name, fieldName, opts.Serializer, opts.Condition)
		if err != nil {
			return err
		}

		for key := range generated {
			if _, exists := e.filters[key]; exists {
				return fmt.Errorf("%w: filter '%s' of %s.%s clashes with an existing filter", errs.ErrFieldAlreadyDefined, key, e.Name, name)
			}
		}

		for key := range generated {
			e.filterTypes[key] = opts.Filter
			e.aliases[key] = name
		}
		e.filters.Merge(generated)
	}

	e.fields = append(e.fields, Field{
		Name:      name,
		FieldName: fieldName,
		Filter:    opts.Filter,
	})

	return nil
}

// checkCondition requires a custom condition to take its value from ${alias}
// and nothing else.
func checkCondition(alias string, condition string) error {
	names, err := query.Tokens(condition)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidCondition, err)
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: condition must reference ${%s}", errs.ErrInvalidCondition, alias)
	}
	for _, n := range names {
		if n != alias {
			return fmt.Errorf("%w: condition references ${%s}, only ${%s} is bound", errs.ErrInvalidCondition, n, alias)
		}
	}
	return nil
}

func (e *Entity) Filters() resources.Filters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filters.Clone()
}

// FilterType returns the type of the field that generated the filter key.
func (e *Entity) FilterType(key string) (resources.FilterType, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.filterTypes[key]
	return t, ok
}

// Alias returns the field alias that generated the filter key.
func (e *Entity) Alias(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.aliasOf(key)
}

// aliasOf expects the caller to hold mu.
func (e *Entity) aliasOf(key string) (string, bool) {
	a, ok := e.aliases[key]
	return a, ok
}

func (e *Entity) Fields() []Field {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// Columns returns the distinct column names in registration order.
func (e *Entity) Columns() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	seen := map[string]bool{}
	cols := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		if seen[f.FieldName] {
			continue
		}
		seen[f.FieldName] = true
		cols = append(cols, f.FieldName)
	}
	return cols
}

// Column resolves a field alias or column name to the column name.
func (e *Entity) Column(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, f := range e.fields {
		if f.Name == name || f.FieldName == name {
			return f.FieldName, true
		}
	}
	return "", false
}

func (e *Entity) ValidateFilters(groups ...resources.FilterGroup) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if unknown := query.UnknownFilters(e.filters, groups...); len(unknown) > 0 {
		return &errs.NonSupportedFilterError{Filters: unknown}
	}
	return nil
}

func (e *Entity) ParseFilters(groups ...resources.FilterGroup) (*query.Clause, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return query.Where(e.filters, e.aliasOf, groups...)
}
