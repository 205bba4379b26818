package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "tasknotify"
	configFile = "config.yaml"
	envPrefix  = "TASKNOTIFY"

	// DefaultLogName is the notification log file placed in the output dir.
	DefaultLogName = "notification_tracker.txt"
)

// ErrIncomplete is returned by Validate when required settings are missing.
var ErrIncomplete = errors.New("configuration is incomplete")

type Config struct {
	Paths    PathsConfig    `mapstructure:"paths" yaml:"paths"`
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule"`
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Message  MessageConfig  `mapstructure:"message" yaml:"message"`
	Notifier NotifierConfig `mapstructure:"notifier" yaml:"notifier"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
}

type PathsConfig struct {
	Outline         string `mapstructure:"outline" yaml:"outline"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`
	NotificationLog string `mapstructure:"notification_log" yaml:"notification_log"`
}

// Complete reports whether every path needed for a run is set.
func (p PathsConfig) Complete() bool {
	return p.Outline != "" && p.OutputDir != "" && p.NotificationLog != ""
}

type ScheduleConfig struct {
	Window   time.Duration `mapstructure:"window" yaml:"window"`
	Timezone string        `mapstructure:"timezone" yaml:"timezone"`
}

// Location resolves Timezone, defaulting to the local zone.
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" || strings.EqualFold(s.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

type IdentityConfig struct {
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
	PrefixLen int    `mapstructure:"prefix_len" yaml:"prefix_len"`
}

type MessageConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	MaxLen int    `mapstructure:"max_len" yaml:"max_len"`
}

type LogConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"` // "file" or "sqlite"
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

type WatchConfig struct {
	Every time.Duration `mapstructure:"every" yaml:"every"`
}

// Load reads the config file at path (or the default location when path is
// empty) and applies TASKNOTIFY_* environment overrides. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not check config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDerived()
	return &cfg, nil
}

// Save writes cfg as YAML to path (or the default location).
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the settings a run cannot do without.
func (c *Config) Validate() error {
	var missing []string
	if !c.Paths.Complete() {
		missing = append(missing, "paths")
	}
	if len(c.Notifier.Transports) == 0 {
		missing = append(missing, "notifier.transports")
	}
	for _, name := range c.Notifier.Transports {
		if !c.Notifier.TransportComplete(name) {
			missing = append(missing, "notifier."+name)
		}
	}
	if c.Log.Backend == "sqlite" && c.Log.SQLitePath == "" {
		missing = append(missing, "log.sqlite_path")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) applyDerived() {
	if c.Paths.OutputDir != "" && c.Paths.NotificationLog == "" {
		c.Paths.NotificationLog = filepath.Join(c.Paths.OutputDir, DefaultLogName)
	}
	if c.Log.Backend == "sqlite" && c.Log.SQLitePath == "" && c.Paths.OutputDir != "" {
		c.Log.SQLitePath = filepath.Join(c.Paths.OutputDir, "notifications.db")
	}
	if c.Notifier.Widget.Path == "" && c.Paths.OutputDir != "" {
		c.Notifier.Widget.Path = filepath.Join(c.Paths.OutputDir, "widget.yaml")
	}
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}
