package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFilterType  error = errors.New("not supported filter type")
	ErrNonSupportedFilter     error = errors.New("one or more filters are not supported")
	ErrMissingFilterValue     error = errors.New("missing filter value")
	ErrFieldAlreadyDefined    error = errors.New("field already defined")
	ErrUnsupportedTokenFormat error = errors.New("unsupported token format")
	ErrInvalidCondition       error = errors.New("invalid filter condition")
)

// UnsupportedFilterTypeError is returned when a filter type tag is not one of the
// supported set. The message text is matched by callers and must not change.
type UnsupportedFilterTypeError struct {
	Type      string
	Supported []string
}

func (e *UnsupportedFilterTypeError) Error() string {
	return fmt.Sprintf("\"%s\" not supported filter type. Supported types are: %s.", e.Type, strings.Join(e.Supported, ","))
}

func (e *UnsupportedFilterTypeError) Is(target error) bool {
	return target == ErrUnsupportedFilterType
}

// NonSupportedFilterError lists the filter keys an entity does not expose.
type NonSupportedFilterError struct {
	Filters []string
}

func (e *NonSupportedFilterError) Error() string {
	return fmt.Sprintf("One or more filters are not supported: %s", strings.Join(e.Filters, ", "))
}

func (e *NonSupportedFilterError) Is(target error) bool {
	return target == ErrNonSupportedFilter
}
