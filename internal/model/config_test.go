package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://localhost:8080", cfg.App.BaseURL)
	assert.NotEmpty(t, cfg.Database.Path)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /var/lib/loanchecklist/checklist.db
storage:
  bucket: loan-docs
  endpoint: http://minio:9000
smtp:
  host: smtp.lender.test
  username: loans@lender.test
  tls: true
templates:
  path: /etc/loanchecklist/templates.yaml
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/loanchecklist/checklist.db", cfg.Database.Path)
	assert.Equal(t, "loan-docs", cfg.Storage.Bucket)
	assert.Equal(t, "http://minio:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.True(t, cfg.SMTP.TLS)
	assert.Equal(t, "loans@lender.test", cfg.SMTP.From, "from defaults to username")
	assert.Equal(t, "/etc/loanchecklist/templates.yaml", cfg.Templates.Path)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LOANCHECKLIST_SERVER_ADDR", ":9090")
	t.Setenv("LOANCHECKLIST_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Server.Addr = ":7000"
	cfg.Storage.Bucket = "loan-docs"
	cfg.SMTP.From = "noreply@lender.test"

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", got.Server.Addr)
	assert.Equal(t, "loan-docs", got.Storage.Bucket)
	assert.Equal(t, "noreply@lender.test", got.SMTP.From)
}
