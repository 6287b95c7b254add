package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
)

// isolateEnv clears every NOCTURNE_ variable the loader reads and restores
// them when the test ends.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DB_PATH", "TIMEZONE", "LOG_LEVEL", "DEBUG",
		"SNAPSHOT_RETENTION_DAYS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	} {
		key := constants.EnvPrefix + name
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Timezone != "Local" {
		t.Errorf("Timezone = %q, want Local", cfg.Timezone)
	}
	if cfg.SnapshotRetentionDays != constants.DefaultSnapshotKeep {
		t.Errorf("SnapshotRetentionDays = %d, want %d", cfg.SnapshotRetentionDays, constants.DefaultSnapshotKeep)
	}
	if _, err := os.UserHomeDir(); err == nil && cfg.DatabasePath == constants.DefaultConfigPath {
		t.Errorf("DatabasePath = %q, want home directory expanded", cfg.DatabasePath)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
}

func TestLoadPrecedence(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	yamlFile := writeFile(t, dir, "config.yaml", `
database_path: /data/from-yaml.db
timezone: America/New_York
log_level: info
snapshot_retention_days: 10
redis_addr: yaml:6379
`)
	envFile := writeFile(t, dir, ".env", "NOCTURNE_SNAPSHOT_RETENTION_DAYS=20\nNOCTURNE_REDIS_ADDR=dotenv:6379\n")
	t.Setenv(constants.EnvPrefix+"REDIS_ADDR", "env:6379")

	cfg, err := Load(yamlFile, envFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DatabasePath != "/data/from-yaml.db" {
		t.Errorf("DatabasePath = %q, want yaml value", cfg.DatabasePath)
	}
	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want yaml value", cfg.Timezone)
	}
	if cfg.SnapshotRetentionDays != 20 {
		t.Errorf("SnapshotRetentionDays = %d, want 20 from .env", cfg.SnapshotRetentionDays)
	}
	// The process environment wins over .env.
	if cfg.RedisAddr != "env:6379" {
		t.Errorf("RedisAddr = %q, want env:6379", cfg.RedisAddr)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{"malformed yaml", "timezone: [unclosed", nil},
		{"unknown timezone", "timezone: Mars/Olympus", nil},
		{"zero retention", "snapshot_retention_days: 0", nil},
		{"bad log level", "log_level: loud", nil},
		{"redis db out of range", "redis_db: 16", nil},
		{"non-integer env", "", map[string]string{"REDIS_DB": "two"}},
		{"non-boolean env", "", map[string]string{"DEBUG": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			dir := t.TempDir()
			for k, v := range tt.env {
				t.Setenv(constants.EnvPrefix+k, v)
			}
			yamlFile := writeFile(t, dir, "config.yaml", tt.yaml)

			cfg, err := Load(yamlFile, filepath.Join(dir, "missing.env"))
			if err == nil {
				err = cfg.Validate()
			}
			if !stderrors.Is(err, errors.ErrValidation) {
				t.Errorf("Load()+Validate() error = %v, want validation error", err)
			}
		})
	}
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	yamlFile := writeFile(t, dir, "config.yaml", "timezone: Mars/Olympus\n")

	cfg, err := Load(yamlFile, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// A later override, such as --timezone, repairs the file value.
	cfg.Timezone = "UTC"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after override error: %v", err)
	}
}

func TestEnvOverridesDebug(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	t.Setenv(constants.EnvPrefix+"DEBUG", "true")

	cfg, err := Load(filepath.Join(dir, "none.yaml"), filepath.Join(dir, "none.env"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true from environment")
	}
}

func TestIsPostgresConn(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"postgres://localhost/db", true},
		{"postgresql://u@host/db", true},
		{"/home/me/.config/nocturne/nocturne.db", false},
		{"host=localhost dbname=x", false},
	}
	for _, tt := range tests {
		if got := IsPostgresConn(tt.in); got != tt.want {
			t.Errorf("IsPostgresConn(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome(abs) = %q, want unchanged", got)
	}
}

func TestDir(t *testing.T) {
	cfg := Default()
	cfg.DatabasePath = "/var/lib/nocturne/nocturne.db"
	if got := cfg.Dir(); got != "/var/lib/nocturne" {
		t.Errorf("Dir() = %q, want /var/lib/nocturne", got)
	}
}
