// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config defines the mercado server configuration file.
package config

import (
	"os"
	"path/filepath"
)

// Config is the on-disk configuration, stored at ~/.mercado/mercado.yaml.
type Config struct {
	// Server controls the local HTTP listener.
	Server ServerConfig `yaml:"server"`

	// Storage controls the embedded database.
	Storage StorageConfig `yaml:"storage"`

	// Logging controls log level and optional file logging.
	Logging LoggingConfig `yaml:"logging"`

	// Assistant toggles the AI endpoints. The API key itself stays in the
	// environment (OPENAI_API_KEY), never in this file.
	Assistant AssistantConfig `yaml:"assistant"`
}

type ServerConfig struct {
	Port int `yaml:"port"` // e.g. 8950
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"` // BadgerDB directory
}

type LoggingConfig struct {
	Level  string `yaml:"level"`             // debug, info, warn, error
	LogDir string `yaml:"log_dir,omitempty"` // empty disables file logging
}

type AssistantConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the first-run configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Server:  ServerConfig{Port: 8950},
		Storage: StorageConfig{DataDir: filepath.Join(home, ".mercado", "data")},
		Logging: LoggingConfig{
			Level:  "info",
			LogDir: filepath.Join(home, ".mercado", "logs"),
		},
		Assistant: AssistantConfig{Enabled: true},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mercado", "mercado.yaml"), nil
}
