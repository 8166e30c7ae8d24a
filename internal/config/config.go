// Package config loads the notifier configuration from an optional
// JSON file, NOTIFYTRAY_* environment variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultHost  = "127.0.0.1"
	DefaultPort  = 8811
	DefaultIcon  = "sun"
	DefaultSound = "win.sound.asterisk"

	envPrefix = "NOTIFYTRAY_"
)

// Config holds one notifier instance's settings. The values are fixed
// for the lifetime of the instance; changing them means constructing a
// new one.
type Config struct {
	Host  string // bind address, loopback by default
	Port  int    // listen port
	Icon  string // default icon name, shown at startup and after a reset
	Sound string // desktop sound property played per notification
}

// Load reads configuration with priority: env > config file > defaults.
// path overrides the default config file location; an absent file is
// not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"host":  DefaultHost,
		"port":  DefaultPort,
		"icon":  DefaultIcon,
		"sound": DefaultSound,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), json.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)

	cfg := &Config{
		Host:  k.String("host"),
		Icon:  k.String("icon"),
		Sound: k.String("sound"),
	}
	if port, err := strconv.Atoi(strings.TrimSpace(k.String("port"))); err == nil {
		cfg.Port = port
	}
	cfg.Normalize()

	return cfg, nil
}

// Normalize replaces missing or out-of-range values with the defaults.
func (c *Config) Normalize() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = DefaultPort
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
	if c.Sound == "" {
		c.Sound = DefaultSound
	}
}

// Address returns the formatted host:port address string.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// defaultConfigPath points at the per-user config file, or "" when the
// user config directory cannot be determined.
func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "notifytray", "config.json")
}
