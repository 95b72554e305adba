package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "ce"
	envPrefix  = "CE"

	KeyEndpointURL     = "endpoint.url"
	KeyEndpointMode    = "endpoint.mode"
	KeyEndpointTimeout = "endpoint.timeout"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
)

type Config struct {
	Endpoint EndpointConfig
	Log      LogConfig
	// File is the config file that was read, or "" when none was found.
	File string
}

type EndpointConfig struct {
	URL     string
	Mode    string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the config file (explicit path, or
// $XDG_CONFIG_HOME/ce/config.toml) and CE_* environment variables.
// A missing default file is not an error; an empty endpoint URL is allowed
// and reported by Config.EndpointConfigured.
func Load(v *viper.Viper, explicitPath string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetDefault(KeyEndpointURL, "")
	v.SetDefault(KeyEndpointMode, "no-cors")
	v.SetDefault(KeyEndpointTimeout, time.Duration(0))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		dir, err := defaultConfigDir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Endpoint: EndpointConfig{
			URL:     strings.TrimSpace(v.GetString(KeyEndpointURL)),
			Mode:    v.GetString(KeyEndpointMode),
			Timeout: v.GetDuration(KeyEndpointTimeout),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		File: v.ConfigFileUsed(),
	}
	if cfg.Endpoint.Timeout < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", KeyEndpointTimeout)
	}

	return cfg, nil
}

func (c Config) EndpointConfigured() bool {
	return c.Endpoint.URL != ""
}

func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDir), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDir), nil
}
