package resources

import (
	"sort"
	"strings"

	"github.com/M0rdr3d/lisk/pkg/errs"
)

type FilterType string

const (
	BooleanFilterType FilterType = "BOOLEAN"
	TextFilterType    FilterType = "TEXT"
	NumberFilterType  FilterType = "NUMBER"
	CustomFilterType  FilterType = "CUSTOM"
)

// SupportedFilterTypes is ordered. Error messages list the types in this order.
var SupportedFilterTypes = []FilterType{
	TextFilterType,
	NumberFilterType,
	BooleanFilterType,
	CustomFilterType,
}

func (t FilterType) String() string {
	return string(t)
}

func (t FilterType) IsValid() bool {
	switch t {
	case BooleanFilterType, TextFilterType, NumberFilterType, CustomFilterType:
		return true
	}
	return false
}

func ParseFilterType(t string) (FilterType, error) {
	ft := FilterType(strings.TrimSpace(t))
	if !ft.IsValid() {
		return "", NewUnsupportedFilterTypeError(t)
	}
	return ft, nil
}

func NewUnsupportedFilterTypeError(t string) *errs.UnsupportedFilterTypeError {
	supported := make([]string, 0, len(SupportedFilterTypes))
	for _, ft := range SupportedFilterTypes {
		supported = append(supported, ft.String())
	}

	return &errs.UnsupportedFilterTypeError{
		Type:      t,
		Supported: supported,
	}
}

// Filter key suffixes appended to a field alias.
const (
	EqualSuffix          = "_eql"
	NotEqualSuffix       = "_ne"
	GreaterThanSuffix    = "_gt"
	GreaterOrEqualSuffix = "_gte"
	LessThanSuffix       = "_lt"
	LessOrEqualSuffix    = "_lte"
	InSuffix             = "_in"
	LikeSuffix           = "_like"
)

// Filters maps a filter key (alias plus optional suffix) to its condition template.
type Filters map[string]string

func (f Filters) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge copies every entry of other into f, overwriting duplicates.
func (f Filters) Merge(other Filters) {
	for k, v := range other {
		f[k] = v
	}
}

func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	out.Merge(f)
	return out
}
