package cli

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arrange/pkg/layout"
	"github.com/matzehuels/arrange/pkg/pipeline"
	"github.com/matzehuels/arrange/pkg/render"
	"github.com/matzehuels/arrange/pkg/route"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

// Server defaults.
const (
	defaultAddr         = ":8080"
	defaultMaxBodyBytes = 1 << 20
)

// Config is the optional TOML config file. Every section starts from the
// built-in defaults, so a file only needs the keys it changes.
//
//	[layout]
//	stiffness = 60
//	seed = 7
//
//	[render]
//	formats = ["svg", "png"]
type Config struct {
	Layout layout.Params `toml:"layout"`
	Run    layout.Bounds `toml:"run"`
	Route  RouteConfig   `toml:"route"`
	Render RenderConfig  `toml:"render"`
	Server ServerConfig  `toml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// RouteConfig is the [route] section.
type RouteConfig struct {
	Spacing float64 `toml:"spacing"`
}

// RenderConfig is the [render] section.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Padding  float64  `toml:"padding"`
	FontSize float64  `toml:"font_size"`
	Scale    float64  `toml:"scale"`
}

// ServerConfig is the [server] section.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Layout: layout.DefaultParams(),
		Run:    layout.DefaultBounds(),
		Route:  RouteConfig{Spacing: route.Spacing},
		Render: RenderConfig{
			Formats:  []string{render.FormatSVG},
			Padding:  render.DefaultPadding,
			FontSize: render.DefaultFontSize,
			Scale:    render.DefaultScale,
		},
		Server: ServerConfig{
			Addr:         defaultAddr,
			MaxBodyBytes: defaultMaxBodyBytes,
		},
	}
}

// LoadConfig reads the config file at path over the defaults. With an empty
// path the XDG location is tried and a missing file there is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !explicit {
				return DefaultConfig(), nil
			}
			return cfg, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, apperrors.New(apperrors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	return cfg, nil
}

// Options converts the config into pipeline options.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Layout:  c.Layout,
		Run:     c.Run,
		Spacing: c.Route.Spacing,
		Formats: append([]string(nil), c.Render.Formats...),
		Render: render.Options{
			Padding:  c.Render.Padding,
			FontSize: c.Render.FontSize,
			Scale:    c.Render.Scale,
		},
	}
}
