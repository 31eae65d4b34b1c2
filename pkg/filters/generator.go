package filters

import (
	"fmt"

	"github.com/M0rdr3d/lisk/pkg/resources"
)

// Generator turns field declarations into filter condition templates. It holds
// no mutable state and is safe for concurrent use.
type Generator struct {
	catalog Catalog
}

// NewGenerator returns a Generator that falls back to catalog for fields
// declared without a serializer.
func NewGenerator(catalog Catalog) *Generator {
	return &Generator{
		catalog: catalog,
	}
}

var defaultGenerator = NewGenerator(DefaultCatalog())

// Generate builds the filters of a field using the stock serializer catalog.
func Generate(filterType resources.FilterType, alias string, fieldName string, serializer Serializer, condition *string) (resources.Filters, error) {
	return defaultGenerator.Generate(filterType, alias, fieldName, serializer, condition)
}

// Generate maps every filter key applicable to filterType onto its condition
// template. condition is only honoured for CUSTOM filters.
func (g *Generator) Generate(filterType resources.FilterType, alias string, fieldName string, serializer Serializer, condition *string) (resources.Filters, error) {
	if !filterType.IsValid() {
		return nil, resources.NewUnsupportedFilterTypeError(filterType.String())
	}

	if filterType == resources.CustomFilterType && condition != nil {
		return resources.Filters{alias: *condition}, nil
	}

	if serializer == nil {
		serializer = g.catalog.ForType(filterType)
	}
	if serializer == nil {
		return nil, fmt.Errorf("no serializer available for %s filter type", filterType)
	}

	field := fmt.Sprintf("\"%s\"", fieldName)
	filters := resources.Filters{}

	compare := func(key string, op string) error {
		value, err := serializer(nil, ModeSelect, alias, fieldName)
		if err != nil {
			return err
		}
		filters[key] = fmt.Sprintf("%s %s %s", field, op, value)
		return nil
	}

	var ops [][2]string
	switch filterType {
	case resources.BooleanFilterType:
		ops = [][2]string{
			{alias, "="},
			{alias + resources.EqualSuffix, "="},
			{alias + resources.NotEqualSuffix, "<>"},
		}
	case resources.TextFilterType:
		ops = [][2]string{
			{alias, "="},
			{alias + resources.EqualSuffix, "="},
			{alias + resources.NotEqualSuffix, "<>"},
		}
		filters[alias+resources.InSuffix] = fmt.Sprintf("%s IN (${%s%s:csv})", field, alias, resources.InSuffix)
		filters[alias+resources.LikeSuffix] = fmt.Sprintf("%s LIKE (${%s%s})", field, alias, resources.LikeSuffix)
	case resources.NumberFilterType:
		ops = [][2]string{
			{alias, "="},
			{alias + resources.EqualSuffix, "="},
			{alias + resources.NotEqualSuffix, "<>"},
			{alias + resources.GreaterThanSuffix, ">"},
			{alias + resources.GreaterOrEqualSuffix, ">="},
			{alias + resources.LessThanSuffix, "<"},
			{alias + resources.LessOrEqualSuffix, "<="},
		}
		filters[alias+resources.InSuffix] = fmt.Sprintf("%s IN (${%s%s:csv})", field, alias, resources.InSuffix)
	case resources.CustomFilterType:
		ops = [][2]string{
			{alias, "="},
		}
	}

	for _, op := range ops {
		if err := compare(op[0], op[1]); err != nil {
			return nil, err
		}
	}

	return filters, nil
}
