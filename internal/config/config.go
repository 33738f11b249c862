package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerHost string
	ServerPort string
	GinMode    string

	DBDriver   string
	DBDSN      string
	DBLogLevel string

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string

	// OpenTelemetry settings; an empty endpoint disables export
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// TelemetryEnabled reports whether OTLP exporters should be started.
func (c *Config) TelemetryEnabled() bool {
	return c.OTLPEndpoint != ""
}

// Load reads configuration from defaults, an optional config file and the environment.
// Environment variables use the upper-cased key with dots replaced by underscores
// (server.port -> SERVER_PORT).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// These keys historically map to well-known variable names.
	_ = v.BindEnv("db.dsn", "DB_DSN", "DATABASE_URL")
	_ = v.BindEnv("otel.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("otel.service_name", "OTEL_SERVICE_NAME")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		ServerHost:         v.GetString("server.host"),
		ServerPort:         v.GetString("server.port"),
		GinMode:            v.GetString("gin_mode"),
		DBDriver:           strings.ToLower(v.GetString("db.driver")),
		DBDSN:              v.GetString("db.dsn"),
		DBLogLevel:         strings.ToLower(v.GetString("db.log_level")),
		LogLevel:           strings.ToLower(v.GetString("log.level")),
		LogFormat:          strings.ToLower(v.GetString("log.format")),
		CORSAllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		OTLPEndpoint:       v.GetString("otel.endpoint"),
		ServiceName:        v.GetString("otel.service_name"),
		Environment:        v.GetString("environment"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "tasks.db")
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000",
		"http://localhost:3001",
		"http://localhost:3002",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:3001",
		"http://127.0.0.1:3002",
	})
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service_name", "task-api")
	v.SetDefault("environment", "development")
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("db dsn is required")
	}
	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
