package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	Query   QueryConfig   `mapstructure:"query"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type StorageConfig struct {
	LoadsFile         string `mapstructure:"loads_file"`
	ConversationsFile string `mapstructure:"conversations_file"`
}

type QueryConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// LoadConfig reads configuration from an optional YAML file with
// environment variable overrides. A missing file is fine; the defaults
// plus environment carry a full configuration.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("auth.api_key", "mysecret")
	v.SetDefault("storage.loads_file", "loads.json")
	v.SetDefault("storage.conversations_file", "conversations.json")
	v.SetDefault("query.default_limit", 50)
	v.SetDefault("query.max_limit", 200)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file when present
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Environment overrides matching the upstream deployment
	if key := v.GetString("LOADS_API_KEY"); key != "" {
		config.Auth.APIKey = key
	}
	if port := v.GetInt("PORT"); port != 0 {
		config.Server.Port = port
	}
	if path := v.GetString("LOADS_DATA_PATH"); path != "" {
		config.Storage.LoadsFile = path
	}
	if path := v.GetString("CONVERSATIONS_DATA_PATH"); path != "" {
		config.Storage.ConversationsFile = path
	}

	return &config, nil
}
