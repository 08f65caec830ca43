package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

// Config represents the complete pipeline configuration. The sphere
// resolution is fixed process-wide: every field compared to another must
// share it.
type Config struct {
	// NSide is the pipeline resolution. 64 resolves every multipole the
	// large-angle statistics care about.
	NSide int

	// Multipole band for parity and correlation analysis. LMin of 2
	// excludes monopole and dipole.
	LMin int
	LMax int

	// NSims is the Monte Carlo sample count per hypothesis.
	NSims int

	// ScanNSide is the coarse grid resolution for directional scans.
	ScanNSide int

	// MaxCatalogObjects caps the O(N^2) pairwise-vector construction.
	MaxCatalogObjects int

	// Workers bounds concurrent null evaluations; TasksPerWorker bounds how
	// many samples one worker takes before it is recycled.
	Workers        int
	TasksPerWorker int

	// Seed is the base seed for every deterministic stream.
	Seed int64
}

// Default returns the standard pipeline configuration.
func Default() *Config {
	return &Config{
		NSide:             64,
		LMin:              2,
		LMax:              100,
		NSims:             100,
		ScanNSide:         8,
		MaxCatalogObjects: 2000,
		Workers:           runtime.NumCPU(),
		TasksPerWorker:    16,
		Seed:              42,
	}
}

// Load builds the configuration from environment variables over defaults.
func Load() (*Config, error) {
	cfg := Default()

	var err error
	if cfg.NSide, err = getEnvInt("SKYNULL_NSIDE", cfg.NSide); err != nil {
		return nil, err
	}
	if cfg.LMin, err = getEnvInt("SKYNULL_LMIN", cfg.LMin); err != nil {
		return nil, err
	}
	if cfg.LMax, err = getEnvInt("SKYNULL_LMAX", cfg.LMax); err != nil {
		return nil, err
	}
	if cfg.NSims, err = getEnvInt("SKYNULL_NSIMS", cfg.NSims); err != nil {
		return nil, err
	}
	if cfg.ScanNSide, err = getEnvInt("SKYNULL_SCAN_NSIDE", cfg.ScanNSide); err != nil {
		return nil, err
	}
	if cfg.MaxCatalogObjects, err = getEnvInt("SKYNULL_MAX_CATALOG", cfg.MaxCatalogObjects); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("SKYNULL_WORKERS", cfg.Workers); err != nil {
		return nil, err
	}
	if cfg.TasksPerWorker, err = getEnvInt("SKYNULL_TASKS_PER_WORKER", cfg.TasksPerWorker); err != nil {
		return nil, err
	}
	if seed, err := getEnvInt("SKYNULL_SEED", int(cfg.Seed)); err != nil {
		return nil, err
	} else {
		cfg.Seed = int64(seed)
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations no statistic can be computed under.
func (c *Config) Validate() error {
	if c.NSide < 1 || c.NSide&(c.NSide-1) != 0 {
		return fmt.Errorf("nside must be a power of two, got %d", c.NSide)
	}
	if c.LMin > c.LMax {
		return fmt.Errorf("lmin %d exceeds lmax %d", c.LMin, c.LMax)
	}
	if c.NSims < 1 {
		return fmt.Errorf("nsims must be positive, got %d", c.NSims)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.TasksPerWorker < 1 {
		return fmt.Errorf("tasks per worker must be positive, got %d", c.TasksPerWorker)
	}
	return nil
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	return v, nil
}
