package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Tenant.BusinessType = "Cadeias"
	cfg.Server.RequestTimeoutSeconds = 3
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Cadeias", loaded.Tenant.BusinessType)
	require.Equal(t, 3*time.Second, loaded.Server.RequestTimeout())
	require.Equal(t, Default().Tenant.Country, loaded.Tenant.Country)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"BUSINESS_TYPE", "Hotéis")
	t.Setenv(EnvPrefix+"COUNTRY", "Angola")
	t.Setenv(EnvPrefix+"ADDR", ":9090")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "debug")
	t.Setenv(EnvPrefix+"REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv(EnvPrefix+"NO_COLOR", "true")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	require.Equal(t, "Hotéis", cfg.Tenant.BusinessType)
	require.Equal(t, "Angola", cfg.Tenant.Country)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, 30*time.Second, cfg.Server.RequestTimeout())
	require.True(t, cfg.Output.NoColor)
	require.Equal(t, Default().Server.MetricsNamespace, cfg.Server.MetricsNamespace)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	t.Setenv(EnvPrefix+"REQUEST_TIMEOUT_SECONDS", "soon")
	require.Error(t, Default().ApplyEnv())
}

func TestGetSet(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	cfg := Default()
	cfg.Version = "2.0"
	Set(cfg)
	require.Equal(t, "2.0", Get().Version)
}
