package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type FilterServiceConfig struct {
	Logs     Logging        `mapstructure:"logs"`
	Server   HttpServer     `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Entities []EntityConfig `mapstructure:"entities" validate:"dive"`
}

var FilterServiceConfigDefaults = FilterServiceConfig{
	Logs: Logging{
		Level: Info,
	},
	Server: HttpServer{
		LogLevel:      Info,
		ListenAddress: "0.0.0.0",
		Port:          8085,
	},
	Storage: StorageConfig{
		LogLevel: Info,
		Provider: SQLite,
		SQLite: SQLiteConfig{
			InMemory: true,
		},
	},
}

var configValidate = validator.New()

func Validate[E any](conf *E) error {
	if err := configValidate.Struct(conf); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
