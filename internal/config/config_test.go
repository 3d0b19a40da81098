package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.CatalogDriver)
	assert.Equal(t, 15*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, "checkout-outbox", cfg.CheckoutTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.True(t, cfg.InsecureSecret())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.InsecureSecret())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_DRIVER: postgres\nCATALOG_DSN: postgres://localhost/catalog\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.CatalogDriver)
	assert.Equal(t, "postgres://localhost/catalog", cfg.CatalogDSN)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{CatalogDriver: "oracle", CatalogDSN: "x", JWTSecret: "y"}
	assert.ErrorContains(t, cfg.Validate(), "unsupported CATALOG_DRIVER")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
