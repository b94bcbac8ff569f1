package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BattleSim holds all configuration for the battle simulator.
type BattleSim struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// SkillCatalog points to an external skill catalogue.
	// Empty means the built-in one.
	SkillCatalog string `yaml:"skill_catalog"`

	Variance VarianceConfig `yaml:"variance"`
	Batch    BatchConfig    `yaml:"batch"`

	// Persist stores characters and battle records in the database.
	Persist  bool           `yaml:"persist"`
	Database DatabaseConfig `yaml:"database"`
}

// VarianceConfig bounds the per-slot power jitter.
type VarianceConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// BatchConfig tunes batch simulation.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 = GOMAXPROCS
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultBattleSim returns BattleSim config with sensible defaults.
func DefaultBattleSim() BattleSim {
	return BattleSim{
		LogLevel: "info",
		Variance: VarianceConfig{
			Min: 0.9,
			Max: 1.1,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "squadbattle",
			Password: "squadbattle",
			DBName:   "squadbattle",
			SSLMode:  "disable",
		},
	}
}

// Validate checks values the simulator cannot run with.
func (c BattleSim) Validate() error {
	if c.Variance.Min < 0 || c.Variance.Max < c.Variance.Min {
		return fmt.Errorf("variance window [%v, %v] is invalid", c.Variance.Min, c.Variance.Max)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	return nil
}

// LoadBattleSim loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadBattleSim(path string) (BattleSim, error) {
	cfg := DefaultBattleSim()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
