package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pingscope/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, model.DefaultProbeTimeout, cfg.Probe.Timeout.Duration())
}

func TestLoad(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("Valid", func(t *testing.T) {
		path := writeConfig(t, `
data:
  dir: testdata
probe:
  timeout: 10s
metrics:
  prefix: custom
  listen: "127.0.0.1:9100"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "testdata", cfg.Data.Dir)
		assert.Equal(t, 10*time.Second, cfg.Probe.Timeout.Duration())
		assert.Equal(t, "custom", cfg.Metrics.Prefix)
		// Unset fields still get defaults.
		assert.Equal(t, model.DefaultRegistryFile, cfg.Data.Datacenters)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := writeConfig(t, "data: [unclosed")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("FailsValidation", func(t *testing.T) {
		path := writeConfig(t, `
metrics:
  listen: "not-an-address"
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}
