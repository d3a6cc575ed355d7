package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ServerConfig configures the local HTTP shell.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`           // Listen address, e.g. 127.0.0.1:8080
	BasePath string `mapstructure:"base_path" yaml:"base_path"` // Prefix for every route
}

// CatalogConfig points at an optional catalog document.
type CatalogConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // YAML or JSON catalog; empty means built-in
}

// PanelConfig sets the starting panel.
type PanelConfig struct {
	Quantity string `mapstructure:"quantity" yaml:"quantity"` // Quantity selected on first load
	Renderer string `mapstructure:"renderer" yaml:"renderer"` // Default renderer name
	Preset   string `mapstructure:"preset" yaml:"preset"`     // Optional label preset document
	Engine   string `mapstructure:"engine" yaml:"engine"`     // Template engine: pongo2 or go-template
}

// ThemeConfig selects the theme passed to renderers.
type ThemeConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Variant string `mapstructure:"variant" yaml:"variant"` // Empty follows the current quantity
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // json or console
}

// Config wraps the entire unitconv configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Panel   PanelConfig   `mapstructure:"panel" yaml:"panel"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// Load reads the config file when it exists and overlays environment
// variables. An empty path loads defaults and the environment only.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads a config file that must exist.
func LoadFile(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filePath, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used without file or environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
		Panel:  PanelConfig{Renderer: "vanilla", Engine: "pongo2"},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Panel.Engine {
	case "pongo2", "go-template":
	default:
		return fmt.Errorf("config: panel.engine %q must be pongo2 or go-template", c.Panel.Engine)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q must be json or console", c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.base_path", d.Server.BasePath)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("panel.quantity", d.Panel.Quantity)
	v.SetDefault("panel.renderer", d.Panel.Renderer)
	v.SetDefault("panel.preset", d.Panel.Preset)
	v.SetDefault("panel.engine", d.Panel.Engine)
	v.SetDefault("theme.name", d.Theme.Name)
	v.SetDefault("theme.variant", d.Theme.Variant)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// envBindings maps config keys to the environment variables that can set
// them, preferred name first.
var envBindings = map[string][]string{
	"server.addr":      {"UNITCONV_ADDR", "UNITCONV_SERVER_ADDR"},
	"server.base_path": {"UNITCONV_BASE_PATH"},
	"catalog.path":     {"UNITCONV_CATALOG"},
	"panel.quantity":   {"UNITCONV_QUANTITY"},
	"panel.renderer":   {"UNITCONV_RENDERER"},
	"panel.preset":     {"UNITCONV_PRESET"},
	"panel.engine":     {"UNITCONV_TEMPLATE_ENGINE"},
	"theme.name":       {"UNITCONV_THEME"},
	"theme.variant":    {"UNITCONV_THEME_VARIANT"},
	"log.level":        {"UNITCONV_LOG_LEVEL"},
	"log.format":       {"UNITCONV_LOG_FORMAT"},
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}
