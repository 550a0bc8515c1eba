package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Caller CallerConfig `yaml:"caller"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Transport string `yaml:"transport"` // "stdio" or "http"
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// CallerConfig is the fixed identity used in stdio mode, where the
// transport carries no per-request identity headers.
type CallerConfig struct {
	ID   string `yaml:"id"`
	Role string `yaml:"role"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			Transport: "stdio",
		},
		DB: DBConfig{
			Path: "crewbase.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Caller: CallerConfig{
			Role: "USER",
		},
	}

	if path := os.Getenv("CREWBASE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CREWBASE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CREWBASE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CREWBASE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if transport := os.Getenv("CREWBASE_TRANSPORT"); transport != "" {
		cfg.Server.Transport = transport
	}
	if dbPath := os.Getenv("CREWBASE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CREWBASE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("CREWBASE_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
	if callerID := os.Getenv("CREWBASE_CALLER_ID"); callerID != "" {
		cfg.Caller.ID = callerID
	}
	if callerRole := os.Getenv("CREWBASE_CALLER_ROLE"); callerRole != "" {
		cfg.Caller.Role = callerRole
	}

	if cfg.Server.Transport != "stdio" && cfg.Server.Transport != "http" {
		return Config{}, fmt.Errorf("invalid transport %q: must be stdio or http", cfg.Server.Transport)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
