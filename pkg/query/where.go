package query

import (
	"sort"
	"strings"

	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/M0rdr3d/lisk/pkg/resources"
)

// AliasResolver returns the alias a filter key was generated for.
type AliasResolver func(key string) (string, bool)

// UnknownFilters returns the sorted, de-duplicated keys of groups that have no
// template in filters.
func UnknownFilters(filters resources.Filters, groups ...resources.FilterGroup) []string {
	seen := map[string]bool{}
	unknown := []string{}
	for _, group := range groups {
		for key := range group {
			if _, ok := filters[key]; ok || seen[key] {
				continue
			}
			seen[key] = true
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Where joins the conditions of each group with AND and the groups with OR.
// Each condition is bound on its own, with the group value published under both
// the filter key and the alias resolved by aliasOf. A nil clause means no filtering.
func Where(filters resources.Filters, aliasOf AliasResolver, groups ...resources.FilterGroup) (*Clause, error) {
	if unknown := UnknownFilters(filters, groups...); len(unknown) > 0 {
		return nil, &errs.NonSupportedFilterError{Filters: unknown}
	}

	parts := []string{}
	args := []any{}
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}

		keys := make([]string, 0, len(group))
		for key := range group {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		conditions := make([]string, 0, len(keys))
		for _, key := range keys {
			values := map[string]any{key: group[key]}
			if aliasOf != nil {
				if alias, ok := aliasOf(key); ok {
					values[alias] = group[key]
				}
			}

			clause, err := Bind(filters[key], values)
			if err != nil {
				return nil, err
			}

			if len(keys) > 1 {
				conditions = append(conditions, "("+clause.SQL+")")
			} else {
				conditions = append(conditions, clause.SQL)
			}
			args = append(args, clause.Args...)
		}

		parts = append(parts, strings.Join(conditions, " AND "))
	}

	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		return &Clause{SQL: parts[0], Args: args}, nil
	}

	for i, p := range parts {
		parts[i] = "(" + p + ")"
	}

	return &Clause{
		SQL:  strings.Join(parts, " OR "),
		Args: args,
	}, nil
}
