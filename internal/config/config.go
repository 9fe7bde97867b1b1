package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when FORGEPLANNER_CONFIG is unset.
const DefaultPath = "config/forgeplanner.yaml"

// PathEnv names the environment variable overriding DefaultPath.
const PathEnv = "FORGEPLANNER_CONFIG"

// Planner holds all configuration for the planner tools.
type Planner struct {
	LogLevel string `yaml:"log_level"`

	// Game data
	DataDir     string        `yaml:"data_dir"`
	Version     string        `yaml:"version"` // empty selects the latest version
	LoadTimeout time.Duration `yaml:"load_timeout"`

	// Session defaults
	TreeMode    string `yaml:"tree_mode"`
	Profile     string `yaml:"profile"`
	ProfileFile string `yaml:"profile_file"` // used when the database is disabled

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
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

// DefaultPlanner returns Planner config with sensible defaults.
func DefaultPlanner() Planner {
	return Planner{
		LogLevel:    "info",
		DataDir:     "data",
		LoadTimeout: 30 * time.Second,
		TreeMode:    "actual",
		Profile:     "default",
		ProfileFile: "profile.json",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "forgeplanner",
			Password: "forgeplanner",
			DBName:   "forgeplanner",
			SSLMode:  "disable",
		},
	}
}

// Path returns the config path, honouring FORGEPLANNER_CONFIG.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// LoadPlanner loads planner config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPlanner(path string) (Planner, error) {
	cfg := DefaultPlanner()

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

	return cfg, nil
}
