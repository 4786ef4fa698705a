// config.go loads the file-level defaults for the store and log paths.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName    = "worktravel"
	configFile = "config.json"
	storeFile  = "store.json"
	logFile    = "worktravel.log"
)

// Config holds file-level defaults. Flags override every field.
type Config struct {
	StorePath string `json:"store_path"`
	LogPath   string `json:"log_path"`
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// GetConfigPath returns where the config file lives.
func GetConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func defaultConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		StorePath: filepath.Join(dir, storeFile),
		LogPath:   filepath.Join(dir, logFile),
	}, nil
}

// LoadConfig reads the config file at path. A missing file yields the
// defaults; empty fields in the file also fall back to the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	var fileCfg Config
	if err := json.NewDecoder(f).Decode(&fileCfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if fileCfg.StorePath != "" {
		cfg.StorePath = fileCfg.StorePath
	}
	if fileCfg.LogPath != "" {
		cfg.LogPath = fileCfg.LogPath
	}
	return cfg, nil
}
