package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const ConfigFileEnvVar = "FILTERD_CONFIG_FILE"
const DefaultConfigFilePath = "/etc/filterd/config.yml"

// DotEnvFilePath is read before the environment is inspected. Variables
// already present in the environment are not overridden.
var DotEnvFilePath = ".env"

func loadDotEnv(path string) {
	err := godotenv.Load(path)
	if err == nil {
		log.Infof("loaded environment from %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("could not read %s: %s", path, err)
	}
}

func DecodeStruct[E any](source interface{}) (E, error) {
	var target E
	err := mapstructure.Decode(source, &target)
	if err != nil {
		var zero E
		return zero, fmt.Errorf("could not decode struct: %w", err)
	}
	return target, nil
}

func readConfig[E any](configFilePath string, defaults *E) (*E, error) {
	vp := viper.New()

	vp.SetConfigFile(configFilePath)
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error while processing config file: %w", err)
	}

	// Values present in the file override the defaults, missing ones are kept.
	var config E
	if defaults != nil {
		config = *defaults
	}

	err := vp.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func LoadConfig[E any](defaults *E) (*E, error) {
	var err error
	var conf *E

	loadDotEnv(DotEnvFilePath)

	configFileEnv := os.Getenv(ConfigFileEnvVar)
	loadStandardPaths := true

	if configFileEnv != "" {
		loadStandardPaths = false
		log.Infof("loading config file from %s", configFileEnv)
		conf, err = readConfig[E](configFileEnv, defaults)

		if err != nil {
			log.Warnf("failed to load config file specified in ENV '%s' variable. will try to load from standard paths: %s", ConfigFileEnvVar, err)
			loadStandardPaths = true
		}
	} else {
		log.Infof("ENV '%s' variable not set, will try to load from standard paths", ConfigFileEnvVar)
	}

	if loadStandardPaths {
		conf, err = readConfig[E](DefaultConfigFilePath, defaults)
	}
	if err != nil {
		return nil, err
	}

	return conf, nil
}
