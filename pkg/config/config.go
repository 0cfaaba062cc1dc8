// Package config provides layered configuration for hydraflow.
// Priority: defaults < user < project < env < flags
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hydraflow/hydraflow/internal/model"
)

// Config holds all hydraflow configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`

	// Additives overrides additive display names, keyed ad1..ad4.
	// Unset slots keep the controller defaults.
	Additives map[string]string `yaml:"additives"`

	Verbose bool `yaml:"verbose"`
}

// OutputConfig controls workbook placement and naming.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    ".",
			Prefix: "Combined_Dispense_Log",
		},
	}
}

// AdditiveTable merges configured additive names over the controller
// defaults.
func (c *Config) AdditiveTable() model.AdditiveTable {
	table := model.DefaultAdditives()
	for key, name := range c.Additives {
		var slot int
		if _, err := fmt.Sscanf(strings.ToLower(key), "ad%d", &slot); err == nil && name != "" {
			table[slot] = name
		}
	}
	return table
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // Paths that were loaded
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{
		config: Default(),
	}
}

// Load loads configuration from all sources in priority order.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Start with defaults
	m.config = Default()

	// Load from paths in order (later overrides earlier)
	for _, path := range m.getConfigPaths() {
		if err := m.loadFile(path); err != nil {
			// Ignore missing files, but surface errors for existing ones
			if !os.IsNotExist(err) {
				return err
			}
		} else {
			m.paths = append(m.paths, path)
		}
	}

	// Override with environment variables
	m.loadEnv()

	return nil
}

// getConfigPaths returns config file paths in priority order.
func (m *Manager) getConfigPaths() []string {
	var paths []string

	// User config
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".hydraflow", "config.yaml"))
	}

	// Project config (current directory)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".hydraflow.yaml"))
	}

	return paths
}

// loadFile loads a single config file and merges it.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return err
	}

	m.merge(&partial)
	return nil
}

// merge merges non-zero values from src into config.
func (m *Manager) merge(src *Config) {
	if src.Output.Dir != "" {
		m.config.Output.Dir = src.Output.Dir
	}
	if src.Output.Prefix != "" {
		m.config.Output.Prefix = src.Output.Prefix
	}
	if len(src.Additives) > 0 {
		if m.config.Additives == nil {
			m.config.Additives = make(map[string]string)
		}
		for k, v := range src.Additives {
			m.config.Additives[k] = v
		}
	}
	if src.Verbose {
		m.config.Verbose = true
	}
}

// loadEnv loads configuration from environment variables.
func (m *Manager) loadEnv() {
	if v := os.Getenv("HYDRAFLOW_OUTPUT_DIR"); v != "" {
		m.config.Output.Dir = v
	}
	if v := os.Getenv("HYDRAFLOW_PREFIX"); v != "" {
		m.config.Output.Prefix = v
	}
	if v := os.Getenv("HYDRAFLOW_VERBOSE"); v == "1" || strings.EqualFold(v, "true") {
		m.config.Verbose = true
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetPaths returns the paths that were loaded.
func (m *Manager) GetPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths
}

// Global instance
var (
	globalManager *Manager
	globalOnce    sync.Once
)

// Global returns the global configuration manager.
func Global() *Manager {
	globalOnce.Do(func() {
		globalManager = NewManager()
		globalManager.Load()
	})
	return globalManager
}
