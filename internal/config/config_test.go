package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// No file at the path, so everything comes from defaults plus the
	// JWT secret required for validation.
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.True(t, cfg.Enrollment.AllowResubmission)
	assert.Equal(t, "./uploads", cfg.Storage.LocalPath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent so
	// the file value wins.
	t.Setenv("JWT_SECRET", "ignored")
	os.Unsetenv("JWT_SECRET")

	content := []byte(`
server:
  port: "9090"
  mode: production
jwt:
  secret: file-secret
  access_token_expiration: 30m
  refresh_token_expiration: 168h
enrollment:
  allow_resubmission: false
seed:
  admin_email: root@eduhub.app
  admin_password: RootPass1
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "30m", cfg.JWT.AccessTokenExpiration)
	assert.False(t, cfg.Enrollment.AllowResubmission)
	assert.Equal(t, "root@eduhub.app", cfg.Seed.AdminEmail)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("DB_NAME", "eduhub_test")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "eduhub_test", cfg.Database.DBName)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "ignored")
	os.Unsetenv("JWT_SECRET")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db.local"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "eduhub"

	assert.Equal(t,
		"postgres://app:pw@db.local:5432/eduhub?sslmode=disable",
		cfg.GetPostgresConnectionString(),
	)
}
