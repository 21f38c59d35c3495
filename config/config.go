// Package config loads the TOML configuration of a web terminal.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/webterm/render"
	"github.com/lixenwraith/webterm/terminal"
)

//go:embed default.toml
var defaultConfig string

var (
	// ErrInvalidConfig is wrapped by every validation failure
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownKey reports keys that match no setting
	ErrUnknownKey = errors.New("unknown config key")
)

// Config is the decoded webterm.toml
type Config struct {
	Backend        string      `toml:"backend"`
	Fallback       []string    `toml:"fallback"`
	Container      string      `toml:"container"`
	Verbose        bool        `toml:"verbose"`
	PreventDefault bool        `toml:"prevent_default"`
	Hyperlinks     bool        `toml:"hyperlinks"`
	MouseSelection bool        `toml:"mouse_selection"`
	Font           FontConfig  `toml:"font"`
	Theme          ThemeConfig `toml:"theme"`
	Grid           GridConfig  `toml:"grid"`
}

type FontConfig struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
}

type ThemeConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

type GridConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DefaultConfig returns the embedded defaults
func DefaultConfig() *Config {
	c := &Config{}
	if _, err := toml.Decode(defaultConfig, c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return c
}

// Decode overlays data on the defaults and validates the result
func Decode(data string) (*Config, error) {
	c := DefaultConfig()
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: %w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and decodes the file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if _, err := c.Kinds(); err != nil {
		invalid("%v", err)
	}
	if strings.TrimSpace(c.Font.Family) == "" {
		invalid("font.family is empty")
	}
	if c.Font.Size <= 0 {
		invalid("font.size %g must be positive", c.Font.Size)
	}
	if _, err := terminal.ParseHex(c.Theme.Foreground); err != nil {
		invalid("theme.foreground: %v", err)
	}
	if _, err := terminal.ParseHex(c.Theme.Background); err != nil {
		invalid("theme.background: %v", err)
	}
	if c.Grid.Width < 0 || c.Grid.Height < 0 {
		invalid("grid %dx%d is negative", c.Grid.Width, c.Grid.Height)
	}
	return errors.Join(errs...)
}

// Kinds returns the backend followed by the fallbacks, without repeats
func (c *Config) Kinds() ([]render.Kind, error) {
	kinds := make([]render.Kind, 0, 1+len(c.Fallback))
	for _, name := range append([]string{c.Backend}, c.Fallback...) {
		k, err := render.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// ThemeColors returns the parsed theme colors
func (c *Config) ThemeColors() (terminal.Theme, error) {
	fg, err := terminal.ParseHex(c.Theme.Foreground)
	if err != nil {
		return terminal.Theme{}, fmt.Errorf("%w: theme.foreground: %v", ErrInvalidConfig, err)
	}
	bg, err := terminal.ParseHex(c.Theme.Background)
	if err != nil {
		return terminal.Theme{}, fmt.Errorf("%w: theme.background: %v", ErrInvalidConfig, err)
	}
	return terminal.Theme{Foreground: fg, Background: bg}, nil
}

// RenderOptions converts the settings shared by every backend
func (c *Config) RenderOptions() (render.Options, error) {
	theme, err := c.ThemeColors()
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{
		Container:  c.Container,
		FontFamily: c.Font.Family,
		FontSize:   c.Font.Size,
		Theme:      theme,
	}, nil
}
