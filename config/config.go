package config

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const configFile = "config.yml"

type Config struct {
	Logging *LoggingConfig `yaml:"logging"`
	Solver  *SolverConfig  `yaml:"solver"`
	Batch   *BatchConfig   `yaml:"batch"`
	LogFile string         `yaml:"logFile"`
}

type LoggingConfig struct {
	// One of debug, info, warn, error
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SolverConfig holds defaults for the developer solve command. Verification
// limits are fixed and not configurable.
type SolverConfig struct {
	Security   uint64 `yaml:"security"`
	Wesolowski bool   `yaml:"wesolowski"`
}

type BatchConfig struct {
	// Zero uses GOMAXPROCS
	Workers int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: &LoggingConfig{
			Level: "info",
		},
		Solver: &SolverConfig{
			Security:   512,
			Wesolowski: false,
		},
		Batch: &BatchConfig{
			Workers: 0,
		},
	}
}

func NewConfig(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	d := yaml.NewDecoder(file)
	config := DefaultConfig()

	if err := d.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "new config")
	}

	// an empty section such as "batch:" decodes to nil
	defaults := DefaultConfig()
	if config.Logging == nil {
		config.Logging = defaults.Logging
	}

	if config.Solver == nil {
		config.Solver = defaults.Solver
	}

	if config.Batch == nil {
		config.Batch = defaults.Batch
	}

	return config, nil
}

// LoadConfig reads config.yml from configPath, creating the directory and a
// default file if either is missing.
func LoadConfig(configPath string) (*Config, error) {
	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, fs.FileMode(0700)); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	} else {
		if err != nil {
			return nil, errors.Wrap(err, "load config")
		}

		if !info.IsDir() {
			return nil, errors.Errorf("load config: %s is not a directory", configPath)
		}
	}

	path := filepath.Join(configPath, configFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SaveConfig(configPath, DefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	} else if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	config, err := NewConfig(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	return config, nil
}

func SaveConfig(configPath string, config *Config) error {
	file, err := os.OpenFile(
		filepath.Join(configPath, configFile),
		os.O_CREATE|os.O_RDWR|os.O_TRUNC,
		os.FileMode(0600),
	)
	if err != nil {
		return err
	}

	defer file.Close()

	d := yaml.NewEncoder(file)

	if err := d.Encode(config); err != nil {
		return err
	}

	return d.Close()
}
