package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the configuration file searched for by LoadConfig
const FileName = "postloop.json"

var ErrConfigNotFound = errors.New("no " + FileName + " found")

// Config represents the postloop.json configuration file
type Config struct {
	Source   string   `json:"source"`
	PostType string   `json:"post_type"`
	PerPage  int      `json:"per_page"`
	Status   []string `json:"status"`
	OrderBy  string   `json:"orderby"`
	Order    string   `json:"order"`
}

// Default returns the configuration used when no postloop.json exists
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = "./posts.json"
	}
	if c.PostType == "" {
		c.PostType = "post"
	}
	if c.PerPage == 0 {
		c.PerPage = 10
	}
	if len(c.Status) == 0 {
		c.Status = []string{"publish"}
	}
	if c.OrderBy == "" {
		c.OrderBy = "date"
	}
	if c.Order == "" {
		c.Order = "DESC"
	}
}

// SourcePath returns Source resolved against the directory holding the config
func (c *Config) SourcePath(root string) string {
	if filepath.IsAbs(c.Source) || root == "" {
		return c.Source
	}
	return filepath.Join(root, c.Source)
}

// LoadConfig loads postloop.json from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the postloop.json configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()

	return &config, nil
}

// loadConfigFromDir searches for postloop.json in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, startDir)
}
