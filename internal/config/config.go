package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/scout-cli/internal/kv"
)

// HistoryConfig selects where recent searches are persisted.
type HistoryConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// ServerConfig configures `scout serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes,omitempty"`
}

// Config is the in-memory representation of ~/.scout/scout.yaml.
type Config struct {
	CandidatesPath string        `yaml:"candidates_path"`
	Excludes       []string      `yaml:"excludes,omitempty"`
	History        HistoryConfig `yaml:"history"`
	Server         ServerConfig  `yaml:"server"`
}

const (
	defaultServerAddr   = "127.0.0.1:8080"
	defaultMaxBodyBytes = 1 << 20
)

// ScoutDir returns the absolute path to ~/.scout/.
func ScoutDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".scout"), nil
}

// ConfigPath returns the absolute path to ~/.scout/scout.yaml.
func ConfigPath() (string, error) {
	dir, err := ScoutDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "scout.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config written on first scout init.
func DefaultConfig() (*Config, error) {
	dir, err := ScoutDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		CandidatesPath: filepath.Join(dir, "candidates"),
		Excludes: []string{
			".DS_Store",
			"Thumbs.db",
			"*.tmp",
			"*.bak",
			"*~",
		},
		History: HistoryConfig{Backend: kv.BackendFile},
		Server: ServerConfig{
			Addr:         defaultServerAddr,
			MaxBodyBytes: defaultMaxBodyBytes,
		},
	}, nil
}

// Load reads ~/.scout/scout.yaml, applies environment overrides and fills
// defaults for anything left empty.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if err := cfg.applyOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save marshals cfg and writes it to ~/.scout/scout.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// HistoryPath returns the storage location for the configured history
// backend. Each backend gets its own default under ~/.scout/.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return ExpandPath(c.History.Path)
	}
	dir, err := ScoutDir()
	if err != nil {
		return "", err
	}
	switch c.History.Backend {
	case kv.BackendSQLite:
		return filepath.Join(dir, "history.db"), nil
	case kv.BackendBadger:
		return filepath.Join(dir, "history.badger"), nil
	default:
		return filepath.Join(dir, "history"), nil
	}
}

// overrides maps environment keys to the config fields they replace.
func (c *Config) overrides() map[string]*string {
	return map[string]*string{
		"SCOUT_CANDIDATES_PATH": &c.CandidatesPath,
		"SCOUT_HISTORY_BACKEND": &c.History.Backend,
		"SCOUT_HISTORY_PATH":    &c.History.Path,
		"SCOUT_SERVER_ADDR":     &c.Server.Addr,
	}
}

func (c *Config) applyOverrides() error {
	for key, field := range c.overrides() {
		v, err := GetConfigValue(key)
		if err != nil {
			return err
		}
		if v != "" {
			*field = v
		}
	}
	return nil
}

func (c *Config) applyDefaults() error {
	def, err := DefaultConfig()
	if err != nil {
		return err
	}
	if c.CandidatesPath == "" {
		c.CandidatesPath = def.CandidatesPath
	}
	c.CandidatesPath, err = ExpandPath(c.CandidatesPath)
	if err != nil {
		return err
	}
	if c.History.Backend == "" {
		c.History.Backend = def.History.Backend
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	return nil
}
