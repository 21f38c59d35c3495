package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/webterm/config"
	"github.com/lixenwraith/webterm/render"
	"github.com/lixenwraith/webterm/terminal"
)

func TestDefaultConfig(t *testing.T) {
	c := config.DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, "dom", c.Backend)
	assert.Empty(t, c.Fallback)
	assert.True(t, c.PreventDefault)
	assert.False(t, c.Hyperlinks)
	assert.False(t, c.MouseSelection)
	assert.Equal(t, config.FontConfig{Family: "monospace", Size: 16}, c.Font)
	assert.Zero(t, c.Grid.Width)

	opts, err := c.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, render.DefaultOptions(), opts)
}

func TestDecode(t *testing.T) {
	c, err := config.Decode(`
backend = "webgl"
fallback = ["canvas", "dom", "webgl2"]
container = "terminal"
verbose = true
hyperlinks = true
mouse_selection = true

[font]
family = "'JetBrains Mono', monospace"
size = 14.5

[theme]
foreground = "#d0d0d0"
background = "#112"

[grid]
width = 100
`)
	require.NoError(t, err)

	kinds, err := c.Kinds()
	require.NoError(t, err)
	assert.Equal(t, []render.Kind{render.KindWebGL2, render.KindCanvas, render.KindDOM}, kinds)
	assert.True(t, c.PreventDefault, "unset keys keep defaults")
	assert.True(t, c.Hyperlinks)
	assert.True(t, c.MouseSelection)
	assert.Equal(t, 100, c.Grid.Width)
	assert.Zero(t, c.Grid.Height)

	opts, err := c.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, "terminal", opts.Container)
	assert.Equal(t, 14.5, opts.FontSize)
	assert.Equal(t, terminal.RGB{R: 0xd0, G: 0xd0, B: 0xd0}, opts.Theme.Foreground)
	assert.Equal(t, terminal.RGB{R: 0x11, G: 0x11, B: 0x22}, opts.Theme.Background)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"unknown backend", `backend = "svg"`, config.ErrInvalidConfig},
		{"unknown fallback", `fallback = ["dom", "ascii"]`, config.ErrInvalidConfig},
		{"font size", "[font]\nsize = 0", config.ErrInvalidConfig},
		{"font family", "[font]\nfamily = \" \"", config.ErrInvalidConfig},
		{"color", "[theme]\nforeground = \"white\"", config.ErrInvalidConfig},
		{"grid", "[grid]\nheight = -1", config.ErrInvalidConfig},
		{"unknown key", `colour = "red"`, config.ErrUnknownKey},
		{"unknown nested key", "[font]\nweight = 700", config.ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Decode(tt.data)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := config.Decode(`backend = `)
	assert.Error(t, err, "syntax error")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := config.DefaultConfig()
	c.Backend = "svg"
	c.Font.Size = -1
	c.Theme.Background = "#zzzzzz"

	err := c.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "svg")
	assert.Contains(t, err.Error(), "font.size")
	assert.Contains(t, err.Error(), "theme.background")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webterm.toml")
	require.NoError(t, os.WriteFile(path, []byte("backend = \"canvas\"\n"), 0o644))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "canvas", c.Backend)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
