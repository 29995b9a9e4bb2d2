// Package config provides configuration management using the Singleton pattern.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "CHATGATE"

	// EnvAPIKey is the primary environment variable for the upstream credential.
	// It takes priority over file configuration so keys never live on disk.
	EnvAPIKey = "COHERE_API_KEY"

	// EnvDefaultModel is the primary environment variable for the default model.
	EnvDefaultModel = "COHERE_DEFAULT_MODEL"
)

// loadConfig loads the configuration from environment variables and files.
// Priority order (highest to lowest):
//  1. COHERE_API_KEY / COHERE_DEFAULT_MODEL env vars
//  2. Environment variables (prefixed with CHATGATE_)
//  3. config.yaml - fallback for local development only
//  4. Default values
func loadConfig(configPath string) (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/chatgate")
		v.AddConfigPath("$HOME/.chatgate")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
		// Config file not found is OK - env vars are the expected source
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	// The provider env vars always win over whatever the file said.
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.Provider.APIKey = strings.TrimSpace(key)
	}
	if model := os.Getenv(EnvDefaultModel); model != "" {
		cfg.Provider.Model = strings.TrimSpace(model)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// Provider defaults
	v.SetDefault("provider.model", "command-a-03-2025")
	v.SetDefault("provider.base_url", "https://api.cohere.com")
	v.SetDefault("provider.timeout_seconds", 30)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
