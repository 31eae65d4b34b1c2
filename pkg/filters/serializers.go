package filters

import (
	"fmt"

	"github.com/M0rdr3d/lisk/pkg/resources"
)

// Mode tells a serializer which statement it renders for. Only SELECT
// conditions are generated.
type Mode string

const ModeSelect Mode = "select"

// Serializer renders the right hand side of a condition for a field. The
// generator always calls it with a nil value and ModeSelect.
type Serializer func(value any, mode Mode, alias string, fieldName string) (string, error)

// Catalog is the read-only table of default serializers. ByType entries win over
// Default.
type Catalog struct {
	Default Serializer
	ByType  map[resources.FilterType]Serializer
}

// ForType returns the serializer registered for t, falling back to Default.
// The result is nil when neither is set.
func (c Catalog) ForType(t resources.FilterType) Serializer {
	if s, ok := c.ByType[t]; ok && s != nil {
		return s
	}
	return c.Default
}

// DefaultCatalog renders every type with DefaultInput.
func DefaultCatalog() Catalog {
	return Catalog{
		Default: DefaultInput,
		ByType:  map[resources.FilterType]Serializer{},
	}
}

func placeholder(alias string) string {
	return fmt.Sprintf("${%s}", alias)
}

func DefaultInput(value any, mode Mode, alias string, fieldName string) (string, error) {
	return placeholder(alias), nil
}

func LowerInput(value any, mode Mode, alias string, fieldName string) (string, error) {
	return fmt.Sprintf("LOWER(%s)", placeholder(alias)), nil
}

// HexInput decodes a hex string parameter into a bytea value.
func HexInput(value any, mode Mode, alias string, fieldName string) (string, error) {
	return fmt.Sprintf("DECODE(%s, 'hex')", placeholder(alias)), nil
}

func IntInput(value any, mode Mode, alias string, fieldName string) (string, error) {
	return fmt.Sprintf("CAST(%s AS INTEGER)", placeholder(alias)), nil
}

var Serializers = map[string]Serializer{
	"default": DefaultInput,
	"lower":   LowerInput,
	"hex":     HexInput,
	"int":     IntInput,
}

// LookupSerializer resolves a serializer by name. The empty name means "use the
// catalog default" and resolves to a nil serializer.
func LookupSerializer(name string) (Serializer, bool) {
	if name == "" {
		return nil, true
	}
	s, ok := Serializers[name]
	return s, ok
}
