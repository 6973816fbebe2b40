package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Setenv("OBJKIT_KEY", "abc123")

	cfg, err := Parse([]byte(`
service_url: https://storage.example.com
headers:
  Authorization: Bearer ${OBJKIT_KEY}
timeout_ms: 5000
validate_ssl: false
`))
	require.NoError(t, err)

	assert.Equal(t, "https://storage.example.com", cfg.ServiceURL)
	assert.Equal(t, "Bearer abc123", cfg.Headers["Authorization"])
	assert.Equal(t, 5000, cfg.TimeoutMs)
	assert.False(t, cfg.GetValidateSSL())
	// Unset fields keep their defaults.
	assert.True(t, cfg.GetFollowRedirects())
	assert.Equal(t, 10, cfg.MaxRedirects)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("service_url: [not, a, string"))
	assert.Error(t, err)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ReadsFileFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte("service_url: http://localhost:8000\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServiceURL)
}

func TestDefaultAccessors(t *testing.T) {
	var cfg Config
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetRequestIDs())
	assert.False(t, cfg.GetNoColor())
	assert.False(t, cfg.GetVerbose())
}
