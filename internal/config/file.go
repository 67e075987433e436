package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML defaults file passed with -config
type File struct {
	APIBaseURL         string `yaml:"api_base_url"`
	TileURLTemplate    string `yaml:"tile_url_template"`
	DownloadDirectory  string `yaml:"download_directory"`
	Language           string `yaml:"language"`
	AutoRevealOnExport *bool  `yaml:"auto_reveal_on_export"`
	LogLevel           string `yaml:"log_level"`
}

// LoadFile reads and validates a YAML defaults file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if f.APIBaseURL != "" {
		if err := ValidateBaseURL(f.APIBaseURL); err != nil {
			return nil, fmt.Errorf("config file %s: api_base_url: %w", path, err)
		}
	}
	return &f, nil
}
