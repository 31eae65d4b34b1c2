package query

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/M0rdr3d/lisk/pkg/errs"
	"github.com/jmoiron/sqlx"
)

// Tokens look like ${name} or ${name:csv}.
var tokenRegexp = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([A-Za-z]+))?\}`)

const csvFormat = "csv"

// Clause is a SQL fragment using '?' bind vars and its positional arguments.
type Clause struct {
	SQL  string
	Args []any
}

func checkFormat(name string, format string) error {
	if format != "" && format != csvFormat {
		return fmt.Errorf("%w: '%s' in token '%s'", errs.ErrUnsupportedTokenFormat, format, name)
	}
	return nil
}

// Tokens returns the names referenced by a condition template, in order of appearance.
func Tokens(template string) ([]string, error) {
	matches := tokenRegexp.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if err := checkFormat(m[1], m[2]); err != nil {
			return nil, err
		}
		names = append(names, m[1])
	}
	return names, nil
}

// Bind resolves every token of template against values. Values are never
// written into the SQL text: plain tokens become one bind var and csv tokens
// one bind var per list element.
func Bind(template string, values map[string]any) (*Clause, error) {
	var args []any
	var bindErr error

	sql := tokenRegexp.ReplaceAllStringFunc(template, func(token string) string {
		if bindErr != nil {
			return token
		}

		m := tokenRegexp.FindStringSubmatch(token)
		name, format := m[1], m[2]

		if err := checkFormat(name, format); err != nil {
			bindErr = err
			return token
		}

		value, ok := values[name]
		if !ok {
			bindErr = fmt.Errorf("%w: %s", errs.ErrMissingFilterValue, name)
			return token
		}

		if format == csvFormat {
			args = append(args, asList(value))
		} else {
			args = append(args, value)
		}
		return "?"
	})
	if bindErr != nil {
		return nil, bindErr
	}

	if len(args) == 0 {
		return &Clause{SQL: sql}, nil
	}

	expanded, expandedArgs, err := sqlx.In(sql, args...)
	if err != nil {
		return nil, fmt.Errorf("could not expand '%s': %w", template, err)
	}

	return &Clause{
		SQL:  expanded,
		Args: expandedArgs,
	}, nil
}

func asList(value any) any {
	switch v := value.(type) {
	case string:
		parts := strings.Split(v, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		return list
	case []byte:
		return []any{v}
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return value
	}

	return []any{value}
}
