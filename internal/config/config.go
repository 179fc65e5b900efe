// Package config handles exporter configuration loading and management.
package config

import "os"

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds settings for a single export run.
type ExportConfig struct {
	IncludeHidden bool        `yaml:"include_hidden"` // Export hidden mesh objects too
	FileMode      os.FileMode `yaml:"file_mode"`      // Permission of written .my_mesh files
	OutputDir     string      `yaml:"output_dir"`     // Used when no output path is given
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			IncludeHidden: false,
			FileMode:      0644,
			OutputDir:     "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
