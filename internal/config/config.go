package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure. It carries the
// persisted last-opened-file pointer, the glossary document location, and
// presentation settings.
type Config struct {
	Files struct {
		LastOpened string `yaml:"last_opened"` // Bundle CSV opened most recently
		AutoLoad   bool   `yaml:"auto_load"`   // Reopen LastOpened at startup
		Glossary   string `yaml:"glossary"`    // Glossary document path (optional)
	} `yaml:"files"`
	Settings struct {
		Debug        bool `yaml:"debug"`         // Verbose logging
		WatchFile    bool `yaml:"watch_file"`    // Watch the open bundle for external changes
		ConfirmDirty bool `yaml:"confirm_dirty"` // Ask before dropping unsaved edits
	} `yaml:"settings"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light)
		Primary  string `yaml:"primary"`  // Primary color
		Error    string `yaml:"error"`    // Error message color
		Emphasis string `yaml:"emphasis"` // Highlighted glossary terms
	} `yaml:"theme"`

	path string // Where this config was loaded from; used by Save
}

// LoadConfig loads configuration from the default location
// (~/.config/bundledit/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "bundledit", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Files.LastOpened != "" {
		cfg.Files.LastOpened = tempCfg.Files.LastOpened
	}
	cfg.Files.AutoLoad = tempCfg.Files.AutoLoad
	if tempCfg.Files.Glossary != "" {
		cfg.Files.Glossary = tempCfg.Files.Glossary
	}

	cfg.Settings.Debug = tempCfg.Settings.Debug
	cfg.Settings.WatchFile = tempCfg.Settings.WatchFile
	cfg.Settings.ConfirmDirty = tempCfg.Settings.ConfirmDirty

	if tempCfg.Theme.Name != "" {
		cfg.ApplyTheme(tempCfg.Theme.Name)
	}
	if tempCfg.Theme.Primary != "" {
		cfg.Theme.Primary = tempCfg.Theme.Primary
	}
	if tempCfg.Theme.Error != "" {
		cfg.Theme.Error = tempCfg.Theme.Error
	}
	if tempCfg.Theme.Emphasis != "" {
		cfg.Theme.Emphasis = tempCfg.Theme.Emphasis
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Files.LastOpened = ""
	cfg.Files.AutoLoad = false
	cfg.Files.Glossary = ""

	cfg.Settings.Debug = false
	cfg.Settings.WatchFile = true
	cfg.Settings.ConfirmDirty = true

	cfg.ApplyTheme("default")

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the configuration back to where it was loaded from, or to the
// default location for a config built in memory.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "bundledit", "config.yaml")
		c.path = path
	}
	return SaveConfig(c, path)
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.Theme.Name != "" {
		known := false
		for _, name := range ListThemes() {
			if c.Theme.Name == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown theme: %s", c.Theme.Name)
		}
	}

	if c.Files.AutoLoad && c.Files.LastOpened == "" {
		return fmt.Errorf("auto_load set with no last_opened file")
	}

	return nil
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"error":    "196", // Red
			"emphasis": "212", // Light Pink
		},
		"dark": {
			"primary":  "105", // Dark Blue
			"error":    "160", // Dark Red
			"emphasis": "147", // Light Blue
		},
		"light": {
			"primary":  "135", // Light Purple
			"error":    "210", // Light Red
			"emphasis": "219", // Very Light Pink
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Error = theme["error"]
	c.Theme.Emphasis = theme["emphasis"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light"}
}
