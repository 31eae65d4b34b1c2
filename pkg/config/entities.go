package config

import "github.com/M0rdr3d/lisk/pkg/resources"

// EntityConfig declares a table and the fields callers may read and filter on.
type EntityConfig struct {
	Name   string        `mapstructure:"name" validate:"required"`
	Table  string        `mapstructure:"table" validate:"required"`
	Fields []FieldConfig `mapstructure:"fields" validate:"required,min=1,dive"`
}

type FieldConfig struct {
	// Name is the alias exposed to callers.
	Name string `mapstructure:"name" validate:"required"`
	// FieldName is the column. Defaults to Name.
	FieldName string `mapstructure:"field_name"`
	// Filter is empty for columns that can be read but not filtered on.
	Filter     resources.FilterType `mapstructure:"filter" validate:"omitempty,oneof=TEXT NUMBER BOOLEAN CUSTOM"`
	Serializer string               `mapstructure:"serializer"`
	Condition  *string              `mapstructure:"condition"`
}
