// Package config resolves nocturne settings from built-in defaults, an
// optional YAML file, an optional .env file and NOCTURNE_* environment
// variables, in that order. Command-line flags are applied last by the caller.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/utils"
)

const (
	DefaultFile    = "~/.config/nocturne/config.yaml"
	DefaultEnvFile = ".env"

	maxRetentionDays = 3650
	maxRedisDB       = 15
)

type Config struct {
	DatabasePath          string `yaml:"database_path"`
	Timezone              string `yaml:"timezone"`
	Debug                 bool   `yaml:"debug"`
	LogLevel              string `yaml:"log_level"`
	SnapshotRetentionDays int    `yaml:"snapshot_retention_days"`
	RedisAddr             string `yaml:"redis_addr"`
	RedisPassword         string `yaml:"redis_password"`
	RedisDB               int    `yaml:"redis_db"`
}

func Default() *Config {
	return &Config{
		DatabasePath:          constants.DefaultConfigPath,
		Timezone:              "Local",
		LogLevel:              "warn",
		SnapshotRetentionDays: constants.DefaultSnapshotKeep,
	}
}

// Load builds a Config from configFile (DefaultFile when empty) and envFile
// (DefaultEnvFile when empty). Missing files are skipped. The result is not
// validated; call Validate once every override has been applied.
func Load(configFile, envFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultFile
	}
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	cfg := Default()
	if err := cfg.readYAML(ExpandHome(configFile)); err != nil {
		return nil, err
	}
	if err := godotenv.Load(ExpandHome(envFile)); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Io("load env file", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.DatabasePath = ExpandHome(cfg.DatabasePath)
	return cfg, nil
}

func (c *Config) readYAML(path string) error {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Io("read config file", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Validation("parse config file %s: %v", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("DB_PATH"); ok {
		c.DatabasePath = v
	}
	if v, ok := lookupEnv("TIMEZONE"); ok {
		c.Timezone = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookupEnv("REDIS_ADDR"); ok {
		c.RedisAddr = v
	}
	if v, ok := lookupEnv("REDIS_PASSWORD"); ok {
		c.RedisPassword = v
	}
	if v, ok := lookupEnv("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Validation("%sDEBUG must be a boolean, got %q", constants.EnvPrefix, v)
		}
		c.Debug = b
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"SNAPSHOT_RETENTION_DAYS", &c.SnapshotRetentionDays},
		{"REDIS_DB", &c.RedisDB},
	}
	for _, e := range ints {
		v, ok := lookupEnv(e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Validation("%s%s must be an integer, got %q", constants.EnvPrefix, e.name, v)
		}
		*e.dst = n
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(constants.EnvPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate checks the timezone name and numeric ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return errors.Validation("database path cannot be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return errors.Validation("invalid timezone %q", c.Timezone)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Validation("invalid log level %q", c.LogLevel)
	}
	if c.SnapshotRetentionDays < 1 || c.SnapshotRetentionDays > maxRetentionDays {
		return errors.Validation("snapshot retention must be between 1 and %d days, got %d", maxRetentionDays, c.SnapshotRetentionDays)
	}
	if c.RedisDB < 0 || c.RedisDB > maxRedisDB {
		return errors.Validation("redis db must be between 0 and %d, got %d", maxRedisDB, c.RedisDB)
	}
	return nil
}

// IsPostgres reports whether DatabasePath is a PostgreSQL connection string.
func (c *Config) IsPostgres() bool {
	return IsPostgresConn(c.DatabasePath)
}

func IsPostgresConn(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// Dir is the directory holding the config file, logs and, for SQLite, the
// database.
func (c *Config) Dir() string {
	if c.IsPostgres() {
		return filepath.Dir(ExpandHome(DefaultFile))
	}
	return filepath.Dir(c.DatabasePath)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
