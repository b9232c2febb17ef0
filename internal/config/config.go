package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/yash-srivastava19/docstudio/internal/draft"
	"github.com/yash-srivastava19/docstudio/internal/settings"
)

const envPrefix = "DOCSTUDIO_"

type Config struct {
	DataDir  string `koanf:"data_dir" yaml:"data_dir"`
	LogFile  string `koanf:"log_file" yaml:"log_file"`
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	SaveDebounce    time.Duration `koanf:"save_debounce" yaml:"save_debounce"`
	SuggestDebounce time.Duration `koanf:"suggest_debounce" yaml:"suggest_debounce"`
	MarkerTTL       time.Duration `koanf:"marker_ttl" yaml:"marker_ttl"`
	EditorWidth     int           `koanf:"editor_width" yaml:"editor_width"`

	// Seed values for the stored API settings, used only while none are saved.
	APIEndpoint string `koanf:"api_endpoint" yaml:"api_endpoint,omitempty"`
	APIKey      string `koanf:"api_key" yaml:"-"`
	Model       string `koanf:"model" yaml:"model,omitempty"`
}

func Default() *Config {
	data := defaultDataDir()
	return &Config{
		DataDir:         data,
		LogFile:         filepath.Join(data, "docstudio.log"),
		LogLevel:        "info",
		SaveDebounce:    draft.SaveDebounce,
		SuggestDebounce: draft.SuggestDebounce,
		MarkerTTL:       draft.MarkerTTL,
		EditorWidth:     80,
	}
}

// Path is where Load looks by default.
func Path() string {
	return filepath.Join(xdgConfig(), "docstudio", "config.yaml")
}

// Load reads the YAML file at path if it exists, then overlays DOCSTUDIO_*
// environment variables, e.g. DOCSTUDIO_DATA_DIR or DOCSTUDIO_API_KEY.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "docstudio.log")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.SaveDebounce <= 0 || c.SuggestDebounce <= 0 || c.MarkerTTL <= 0 {
		return fmt.Errorf("debounce and marker durations must be positive")
	}
	if c.EditorWidth < 20 {
		return fmt.Errorf("editor_width must be at least 20, got %d", c.EditorWidth)
	}
	return nil
}

// StoreDir is the directory the document and settings keys live in.
func (c *Config) StoreDir() string {
	return filepath.Join(c.DataDir, "store")
}

// PublishDir is where published HTML pages are written.
func (c *Config) PublishDir() string {
	return filepath.Join(c.DataDir, "published")
}

// SeedAPI returns API settings taken from the environment or config file,
// for use when the store holds none.
func (c *Config) SeedAPI() (settings.APISettings, bool) {
	s := settings.APISettings{APIEndpoint: c.APIEndpoint, APIKey: c.APIKey, Model: c.Model}
	return s, s.Complete()
}

// Save writes c as YAML to path. The API key is never written.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

func xdgConfig() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func defaultDataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "docstudio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "docstudio")
}
