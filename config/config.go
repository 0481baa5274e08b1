// Package config holds the engine-wide settings read once at startup
// (§6.3), grounded on the teacher's engine.go environment-variable
// idiom (os.Getenv gating an experimental flag) generalized to a
// small struct of named settings instead of a single package-level
// bool.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the engine-wide configuration read from the process
// environment (§6.3).
type Config struct {
	// MaxLocalBufferCapacity bounds how many rows a single operator
	// may materialize before a resource-exhaustion error is raised
	// (§4.5, §5 — enforced as the hash, nested-loop and cross join
	// operators' maxBuildRows; the sort operator applies no row cap).
	MaxLocalBufferCapacity int

	// MaxCacheEvictionsPerQuery is a per-query cache-eviction cap read
	// from the environment. This module has no cache, and no component
	// of it reads this value.
	MaxCacheEvictionsPerQuery int

	// DataCatalogProvider names which connector.Connector family
	// resolves unqualified table references ("memtable", "parquet").
	DataCatalogProvider string
	// DataCatalogConnection is provider-specific connection info (a
	// filesystem root for "parquet", unused for "memtable").
	DataCatalogConnection string

	// ExperimentalExecutionEngine is set when the environment variable
	// is non-empty, mirroring the teacher's GMS_EXPERIMENTAL flag. The
	// module has a single execution pipeline, and no component of it
	// reads this value.
	ExperimentalExecutionEngine bool

	// OpteryxDebug is set when the environment variable is non-empty.
	// No component of the module reads it; logging verbosity does not
	// depend on it.
	OpteryxDebug bool
}

const (
	envMaxLocalBufferCapacity    = "OPTERYX_MAX_LOCAL_BUFFER_CAPACITY"
	envMaxCacheEvictionsPerQuery = "OPTERYX_MAX_CACHE_EVICTIONS_PER_QUERY"
	envDataCatalogProvider       = "OPTERYX_DATA_CATALOG_PROVIDER"
	envDataCatalogConnection     = "OPTERYX_DATA_CATALOG_CONNECTION"
	envExperimentalEngine        = "OPTERYX_EXPERIMENTAL_EXECUTION_ENGINE"
	envDebug                     = "OPTERYX_DEBUG"

	defaultMaxLocalBufferCapacity    = 5_000_000
	defaultMaxCacheEvictionsPerQuery = 32
	defaultDataCatalogProvider       = "memtable"
)

// Default returns a Config with every setting at its documented
// default, ignoring the environment.
func Default() *Config {
	return &Config{
		MaxLocalBufferCapacity:    defaultMaxLocalBufferCapacity,
		MaxCacheEvictionsPerQuery: defaultMaxCacheEvictionsPerQuery,
		DataCatalogProvider:       defaultDataCatalogProvider,
	}
}

// FromEnvironment builds a Config by overlaying OPTERYX_* environment
// variables onto Default(), mirroring the teacher's
// os.Getenv(experimentalFlag) != "" pattern for every setting.
func FromEnvironment() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(envMaxLocalBufferCapacity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", envMaxLocalBufferCapacity, err)
		}
		cfg.MaxLocalBufferCapacity = n
	}
	if v := os.Getenv(envMaxCacheEvictionsPerQuery); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", envMaxCacheEvictionsPerQuery, err)
		}
		cfg.MaxCacheEvictionsPerQuery = n
	}
	if v := os.Getenv(envDataCatalogProvider); v != "" {
		cfg.DataCatalogProvider = v
	}
	if v := os.Getenv(envDataCatalogConnection); v != "" {
		cfg.DataCatalogConnection = v
	}
	cfg.ExperimentalExecutionEngine = os.Getenv(envExperimentalEngine) != ""
	cfg.OpteryxDebug = os.Getenv(envDebug) != ""

	return cfg, nil
}
