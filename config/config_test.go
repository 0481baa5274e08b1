package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mabel-dev/opteryx/config"
)

func TestDefault(t *testing.T) {
	require := require.New(t)
	cfg := config.Default()
	require.Equal("memtable", cfg.DataCatalogProvider)
	require.False(cfg.ExperimentalExecutionEngine)
	require.Greater(cfg.MaxLocalBufferCapacity, 0)
}

func TestFromEnvironmentOverridesDefaults(t *testing.T) {
	require := require.New(t)
	os.Setenv("OPTERYX_DATA_CATALOG_PROVIDER", "parquet")
	os.Setenv("OPTERYX_MAX_LOCAL_BUFFER_CAPACITY", "100")
	os.Setenv("OPTERYX_EXPERIMENTAL_EXECUTION_ENGINE", "1")
	defer os.Unsetenv("OPTERYX_DATA_CATALOG_PROVIDER")
	defer os.Unsetenv("OPTERYX_MAX_LOCAL_BUFFER_CAPACITY")
	defer os.Unsetenv("OPTERYX_EXPERIMENTAL_EXECUTION_ENGINE")

	cfg, err := config.FromEnvironment()
	require.NoError(err)
	require.Equal("parquet", cfg.DataCatalogProvider)
	require.Equal(100, cfg.MaxLocalBufferCapacity)
	require.True(cfg.ExperimentalExecutionEngine)
}

func TestFromEnvironmentRejectsInvalidInt(t *testing.T) {
	require := require.New(t)
	os.Setenv("OPTERYX_MAX_LOCAL_BUFFER_CAPACITY", "not-a-number")
	defer os.Unsetenv("OPTERYX_MAX_LOCAL_BUFFER_CAPACITY")

	_, err := config.FromEnvironment()
	require.Error(err)
}
