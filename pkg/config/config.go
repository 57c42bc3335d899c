package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration
	DatabaseConnectRetryCount int
	DatabaseConnectRetryDelay time.Duration
	DatabaseDebug             bool
	DatabaseFilePath          string
	DatabaseMaxRetries        int
	ServerHost                string
	ServerPort                int
}

const defaultConfigFile = "/config/config.yaml"

// New loads configuration from the yaml file named by CONFIG_FILE (optional)
// and from environment variables. Environment variables take precedence over
// file values, which take precedence over defaults.
func New() (*Config, error) {
	k := koanf.New(".")

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	// Environment variables map onto the same snake_case keys as the file.
	err := k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, field := range []string{"DatabaseFilePath"} {
		key := toSnakeCase(field)
		if strings.TrimSpace(k.String(key)) == "" {
			return nil, errors.Errorf(
				"missing required config: set the %s environment variable or %s in the config file",
				strings.ToUpper(key), key,
			)
		}
	}

	cfg := defaultConfig()
	cfg.DatabaseFilePath = k.String("database_file_path")
	if k.Exists("database_busy_timeout") {
		cfg.DatabaseBusyTimeout = k.Duration("database_busy_timeout")
	}
	if k.Exists("database_connect_retry_count") {
		cfg.DatabaseConnectRetryCount = k.Int("database_connect_retry_count")
	}
	if k.Exists("database_connect_retry_delay") {
		cfg.DatabaseConnectRetryDelay = k.Duration("database_connect_retry_delay")
	}
	if k.Exists("database_debug") {
		cfg.DatabaseDebug = k.Bool("database_debug")
	}
	if k.Exists("database_max_retries") {
		cfg.DatabaseMaxRetries = k.Int("database_max_retries")
	}
	if k.Exists("server_host") {
		cfg.ServerHost = k.String("server_host")
	}
	if k.Exists("server_port") {
		cfg.ServerPort = k.Int("server_port")
	}

	return cfg, nil
}

// NewForTest returns a config backed by an in-memory database, suitable for
// package tests.
func NewForTest() *Config {
	cfg := defaultConfig()
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        5,
		ServerHost:                "0.0.0.0",
		ServerPort:                3689,
	}
}

func toSnakeCase(field string) string {
	return strcase.ToSnake(field)
}
