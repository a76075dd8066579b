package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/topasiaedu/nm-zwds-sub004/internal/pillar"
	"github.com/topasiaedu/nm-zwds-sub004/internal/timing"
)

// DirName is the name of both the global (~/.ziwei) and repo (.ziwei)
// config directories.
const DirName = ".ziwei"

// Config holds application configuration.
type Config struct {
	// LeapPolicy decides how a leap-month birth is read: "split" (default),
	// "current" or "next".
	LeapPolicy string `json:"leap_policy,omitempty"`

	// LimitHorizon is the age the Major Limits are generated up to.
	LimitHorizon int `json:"limit_horizon,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// HTTPBind and HTTPPort are the listen address of `ziwei serve`.
	HTTPBind string `json:"http_bind,omitempty"`
	HTTPPort int    `json:"http_port,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LeapPolicy:   string(pillar.LeapSplit),
		LimitHorizon: timing.DefaultHorizon,
		LogLevel:     "info",
		HTTPBind:     "127.0.0.1",
		HTTPPort:     8080,
	}
}

// Validate rejects values the engine would refuse later.
func (c *Config) Validate() error {
	if _, err := pillar.ParseLeapPolicy(c.LeapPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.LimitHorizon < 0 || c.LimitHorizon > timing.MaxHorizon {
		return fmt.Errorf("config: limit_horizon must be between 0 and %d", timing.MaxHorizon)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("config: http_port %d out of range", c.HTTPPort)
	}
	return nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.ziwei) and repo (.ziwei) directories.
// Repo config is found by walking upward from startDir.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .ziwei/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw returns a zero-valued config (not defaults) if the file doesn't exist.
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		LeapPolicy:    orString(overlay.LeapPolicy, base.LeapPolicy),
		LimitHorizon:  orInt(overlay.LimitHorizon, base.LimitHorizon),
		LogLevel:      orString(overlay.LogLevel, base.LogLevel),
		HTTPBind:      orString(overlay.HTTPBind, base.HTTPBind),
		HTTPPort:      orInt(overlay.HTTPPort, base.HTTPPort),
		DisabledTools: mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
	}
}

func orString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
