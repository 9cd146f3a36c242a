// Package config loads runtime settings from a YAML file and MICROSIM_*
// environment variables. Environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sketch    string `yaml:"sketch"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TPS       int    `yaml:"tps"`
	DataDir   string `yaml:"data_dir"`
	ExportDir string `yaml:"export_dir"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Sketch:    "flowchart",
		Width:     960,
		Height:    720,
		TPS:       60,
		DataDir:   "",
		ExportDir: ".",
		LogLevel:  "info",
	}
}

// Load reads path (a missing file is not an error) and applies environment
// overrides.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	c.Sketch = getEnv("MICROSIM_SKETCH", c.Sketch)
	c.Width = getEnvAsInt("MICROSIM_WIDTH", c.Width)
	c.Height = getEnvAsInt("MICROSIM_HEIGHT", c.Height)
	c.TPS = getEnvAsInt("MICROSIM_TPS", c.TPS)
	c.DataDir = getEnv("MICROSIM_DATA_DIR", c.DataDir)
	c.ExportDir = getEnv("MICROSIM_EXPORT_DIR", c.ExportDir)
	c.LogLevel = getEnv("MICROSIM_LOG_LEVEL", c.LogLevel)
}

// Validate rejects settings the host cannot run with.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps %d must be positive", c.TPS)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
