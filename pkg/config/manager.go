package config

import (
	"fmt"
	"path/filepath"

	"github.com/lerenn/hook-manager/pkg/fs"
	"gopkg.in/yaml.v3"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=manager.go -destination=mocks/manager.gen.go -package=mocks

// Manager interface provides configuration management functionality with an
// embedded config path.
type Manager interface {
	// GetConfig loads and validates the configuration document.
	GetConfig() (*Config, error)
	// SaveConfig writes the configuration document back to disk.
	SaveConfig(config *Config) error
	// GetConfigPath returns the configuration file path.
	GetConfigPath() string
	// LoadManifest loads the hook manifest from a cloned hook repository.
	LoadManifest(repoPath string) (Manifest, error)
}

// realManager manages configuration with an embedded config path.
type realManager struct {
	fs         fs.FS
	configPath string
}

// NewManager creates a new Manager instance with the specified config path.
func NewManager(configPath string) Manager {
	return &realManager{
		fs:         fs.NewFS(),
		configPath: configPath,
	}
}

// GetConfig loads and validates the configuration document.
func (c *realManager) GetConfig() (*Config, error) {
	exists, err := c.fs.Exists(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, c.configPath)
	}

	data, err := c.fs.ReadFile(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig writes the configuration document back to disk.
func (c *realManager) SaveConfig(config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := c.fs.WriteFileAtomic(c.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the configuration file path.
func (c *realManager) GetConfigPath() string {
	return c.configPath
}

// LoadManifest loads the hook manifest from a cloned hook repository.
func (c *realManager) LoadManifest(repoPath string) (Manifest, error) {
	manifestPath := filepath.Join(repoPath, ManifestFileName)

	exists, err := c.fs.Exists(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check manifest file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, manifestPath)
	}

	data, err := c.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestParse, err)
	}

	return manifest, nil
}
