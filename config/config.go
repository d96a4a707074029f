// Package config loads the whiskertint configuration with Viper and
// validates it before any theme file is touched.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"whiskertint/color"
)

// FileName is the default configuration file name.
const FileName = "config.toml"

// ErrMissing is returned when a required key is empty.
var ErrMissing = errors.New("missing configuration value")

// Logging selects the zap level and encoder.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is built once at startup and treated as read-only afterwards.
type Config struct {
	ThemePath         string  `mapstructure:"theme_path"`
	WhiskerMenuPath   string  `mapstructure:"whisker_menu_path"`
	WhiskerMenuPrefix string  `mapstructure:"whisker_menu_prefix"`
	PanelPath         string  `mapstructure:"panel_path"`
	BaseColor         string  `mapstructure:"base_color"`
	Opacity           float64 `mapstructure:"opacity"`
	SearchColor       string  `mapstructure:"search_color"`
	SearchOpacity     float64 `mapstructure:"search_opacity"`
	Logging           Logging `mapstructure:"logging"`

	// Source is the file the values were read from, empty for defaults.
	Source string `mapstructure:"-"`
}

// Default returns the configuration written by "config generate".
func Default() Config {
	return Config{
		ThemePath:         "/usr/share/themes/Mint-L-Dark/gtk-3.0/gtk-dark.css",
		WhiskerMenuPath:   "~/.config/xfce4/panel/",
		WhiskerMenuPrefix: "whiskermenu",
		PanelPath:         "~/.config/xfce4/xfconf/xfce-perchannel-xml/xfce4-panel.xml",
		BaseColor:         "#000000",
		Opacity:           0,
		SearchColor:       "#000000",
		SearchOpacity:     0,
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("theme_path", def.ThemePath)
	v.SetDefault("whisker_menu_path", def.WhiskerMenuPath)
	v.SetDefault("whisker_menu_prefix", def.WhiskerMenuPrefix)
	v.SetDefault("panel_path", def.PanelPath)
	v.SetDefault("base_color", def.BaseColor)
	v.SetDefault("opacity", def.Opacity)
	v.SetDefault("search_color", def.SearchColor)
	v.SetDefault("search_opacity", def.SearchOpacity)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}

// NewViper returns a Viper instance with defaults, search paths and the
// WHISKERTINT_ environment prefix. An explicit path overrides the search.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "whiskertint"))
		}
	}

	// Environment variable support: WHISKERTINT_BASE_COLOR=#112233
	v.SetEnvPrefix("WHISKERTINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration from path (or the search paths), applies
// defaults and environment overrides, and expands "~/" in paths.
func Load(path string) (Config, error) {
	v := NewViper(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		// No file is fine, defaults and environment still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	for _, p := range []*string{&cfg.ThemePath, &cfg.WhiskerMenuPath, &cfg.PanelPath} {
		expanded, err := ExpandHome(*p)
		if err != nil {
			return Config{}, err
		}
		*p = expanded
	}

	return cfg, nil
}

// Validate checks colours, opacities and required paths.
func (c Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"theme_path", c.ThemePath},
		{"whisker_menu_path", c.WhiskerMenuPath},
		{"whisker_menu_prefix", c.WhiskerMenuPrefix},
		{"panel_path", c.PanelPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissing, r.key)
		}
	}

	if err := color.Validate(c.BaseColor, c.Opacity); err != nil {
		return fmt.Errorf("base_color/opacity: %w", err)
	}
	if err := color.Validate(c.SearchColor, c.SearchOpacity); err != nil {
		return fmt.Errorf("search_color/search_opacity: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Generate writes a default configuration file to path. It refuses to
// overwrite an existing file.
func Generate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
