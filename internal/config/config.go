package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/marcus/teamdeck/internal/models"
	"github.com/marcus/teamdeck/internal/workdir"
)

const configFile = ".teamdeck/config.json"

// KeyError is returned for configuration keys that do not exist
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("unknown config key %q (known: %v)", e.Key, Keys())
}

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *models.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return workdir.WriteFileAtomic(filepath.Join(baseDir, configFile), data)
}

type field struct {
	get func(*models.Config) string
	set func(*models.Config, string) error
}

var fields = map[string]field{
	"hover_mode": {
		get: func(c *models.Config) string { return strconv.FormatBool(c.HoverMode) },
		set: func(c *models.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("hover_mode: %w", err)
			}
			c.HoverMode = b
			return nil
		},
	},
	"hover_delay_ms": {
		get: func(c *models.Config) string { return strconv.FormatInt(c.HoverDelay().Milliseconds(), 10) },
		set: func(c *models.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("hover_delay_ms: want a non-negative integer, got %q", v)
			}
			c.HoverDelayMS = n
			return nil
		},
	},
	"mouse": {
		get: func(c *models.Config) string { return strconv.FormatBool(c.MouseEnabled()) },
		set: func(c *models.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("mouse: %w", err)
			}
			c.Mouse = &b
			return nil
		},
	},
	"glamour_style": {
		get: func(c *models.Config) string { return c.Style() },
		set: func(c *models.Config, v string) error {
			c.GlamourStyle = v
			return nil
		},
	},
	"active_tab": {
		get: func(c *models.Config) string { return c.ActiveTab },
		set: func(c *models.Config, v string) error {
			c.ActiveTab = v
			return nil
		},
	},
}

// Keys returns the settable configuration keys, sorted
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the effective value of key, applying defaults
func Get(baseDir, key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", &KeyError{Key: key}
	}
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	return f.get(cfg), nil
}

// Set parses value for key and persists it
func Set(baseDir, key, value string) error {
	f, ok := fields[key]
	if !ok {
		return &KeyError{Key: key}
	}
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	if err := f.set(cfg, value); err != nil {
		return err
	}
	return Save(baseDir, cfg)
}

// SetActiveTab remembers the last selected tab
func SetActiveTab(baseDir, tabID string) error {
	return Set(baseDir, "active_tab", tabID)
}
