package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/stylewalk/pkg/source"
)

const (
	configName = "stylewalk"
	configType = "yaml"
	envPrefix  = "STYLEWALK"
)

// Default values.
const (
	DefaultWorkers  = 0
	DefaultLogLevel = "info"
)

// Load reads configuration from path, or from stylewalk.yaml in the working
// directory or ./config when path is empty. Environment variables prefixed
// with STYLEWALK_ override file values; a missing file is not an error.
func Load(path string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if path != "" {
		viperCfg.SetConfigFile(path)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("tab_width", source.DefaultTabWidth)
	viperCfg.SetDefault("workers", DefaultWorkers)
	viperCfg.SetDefault("language", "")
	viperCfg.SetDefault("checks", []map[string]any{{"id": "*"}})
	viperCfg.SetDefault("suppressions", "")

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", LogFormatText)

	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_insecure", false)
	viperCfg.SetDefault("observability.sample_ratio", 0.0)
	viperCfg.SetDefault("observability.trace_verbose", false)
	viperCfg.SetDefault("observability.metrics_file", "")
}
