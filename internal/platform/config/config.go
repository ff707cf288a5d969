package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// StoreKind identifica el backend del Record Store.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
	StoreSQLite   StoreKind = "sqlite"
)

// Config es la configuración del proceso. Prioridad: flags > env > archivo > defaults.
type Config struct {
	Port       string `yaml:"port"`
	DBDSN      string `yaml:"db_dsn"`
	SQLitePath string `yaml:"sqlite_path"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	AppName    string `yaml:"app_name"`
}

func Defaults() Config {
	return Config{
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "text",
		AppName:   "found-pets",
	}
}

// Load lee el YAML (si path != "") y después aplica las variables de entorno.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Port, "PORT")
	set(&cfg.DBDSN, "DB_DSN")
	set(&cfg.SQLitePath, "SQLITE_PATH")
	set(&cfg.LogLevel, "LOG_LEVEL")
	set(&cfg.LogFormat, "LOG_FORMAT")
	set(&cfg.AppName, "APP_NAME")
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %q", c.Port)
	}
	if c.DBDSN != "" && c.SQLitePath != "" {
		return errors.New("db_dsn and sqlite_path are mutually exclusive")
	}
	return nil
}

// Store decide el backend: Postgres si hay DSN, sqlite si hay path, si no memoria.
func (c Config) Store() StoreKind {
	switch {
	case strings.TrimSpace(c.DBDSN) != "":
		return StorePostgres
	case strings.TrimSpace(c.SQLitePath) != "":
		return StoreSQLite
	default:
		return StoreMemory
	}
}

func (c Config) Addr() string {
	return ":" + strings.TrimSpace(c.Port)
}
