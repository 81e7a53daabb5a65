package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level duebook.yaml configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Horizon  HorizonConfig  `yaml:"horizon"`
	Timeline TimelineConfig `yaml:"timeline"`
}

// DataConfig locates the local database.
type DataConfig struct {
	Path string `yaml:"path"`
}

// HorizonConfig bounds occurrence projection.
type HorizonConfig struct {
	LookaheadMonths int `yaml:"lookahead_months"`
}

// TimelineConfig shapes the scrollable month window.
type TimelineConfig struct {
	MonthsBack  int `yaml:"months_back"`
	MonthsAhead int `yaml:"months_ahead"`
}

// Load reads a duebook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(dataPath string) *Config {
	return &Config{
		Data: DataConfig{
			Path: dataPath,
		},
		Horizon: HorizonConfig{
			LookaheadMonths: 3,
		},
		Timeline: TimelineConfig{
			MonthsBack:  2,
			MonthsAhead: 3,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Horizon.LookaheadMonths < 1 {
		c.Horizon.LookaheadMonths = 3
	}
	if c.Timeline.MonthsBack < 0 {
		c.Timeline.MonthsBack = 2
	}
	if c.Timeline.MonthsAhead < 1 {
		c.Timeline.MonthsAhead = 3
	}
}
