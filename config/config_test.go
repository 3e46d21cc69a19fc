package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/rtrie/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Nil(t, err)
	assert.Equal(t, cfg.Address, ":8080")
	assert.Equal(t, cfg.Engine, config.EngineRaw)
	assert.Equal(t, cfg.ReadTimeout, 10*time.Second)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvAddress, ":9090")
	t.Setenv(config.EnvEngine, "STD")
	t.Setenv(config.EnvVerbose, "true")
	t.Setenv(config.EnvRateLimit, "2.5")
	t.Setenv(config.EnvReadTimeout, "3s")

	cfg, err := config.FromEnv()
	assert.Nil(t, err)
	assert.Equal(t, cfg.Address, ":9090")
	assert.Equal(t, cfg.Engine, config.EngineStd)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, cfg.RateLimit, 2.5)
	assert.Equal(t, cfg.ReadTimeout, 3*time.Second)
}

func TestDotEnvFile(t *testing.T) {
	t.Setenv(config.EnvAddress, "")
	os.Unsetenv(config.EnvAddress)

	file := filepath.Join(t.TempDir(), "test.env")
	assert.Nil(t, os.WriteFile(file, []byte("RTRIE_ADDRESS=:7070\n"), 0o600))

	cfg, err := config.Load(file)
	assert.Nil(t, err)
	assert.Equal(t, cfg.Address, ":7070")
}

func TestInvalidEngine(t *testing.T) {
	t.Setenv(config.EnvEngine, "quantum")

	_, err := config.FromEnv()
	assert.True(t, err != nil)
}
