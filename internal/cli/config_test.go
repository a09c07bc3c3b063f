package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/arrange/pkg/layout"

	apperrors "github.com/matzehuels/arrange/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[layout]
stiffness = 60
damping = 0.3
seed = 7

[run]
max_iterations = 500

[route]
spacing = 10

[render]
formats = ["svg", "png"]
padding = 5

[server]
addr = ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := layout.DefaultParams()
	want.Stiffness, want.Damping, want.Seed = 60, 0.3, 7
	if cfg.Layout != want {
		t.Errorf("Layout = %+v, want %+v", cfg.Layout, want)
	}
	if cfg.Run.MaxIterations != 500 || cfg.Run.Threshold != layout.DefaultThreshold {
		t.Errorf("Run = %+v, want max 500 with default threshold", cfg.Run)
	}
	if cfg.Route.Spacing != 10 {
		t.Errorf("Route.Spacing = %v, want 10", cfg.Route.Spacing)
	}
	if !reflect.DeepEqual(cfg.Render.Formats, []string{"svg", "png"}) {
		t.Errorf("Render.Formats = %v, want [svg png]", cfg.Render.Formats)
	}
	if cfg.Render.FontSize != DefaultConfig().Render.FontSize {
		t.Errorf("Render.FontSize = %v, want default", cfg.Render.FontSize)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodyBytes != defaultMaxBodyBytes {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode apperrors.Code
	}{
		{
			name:     "unknown key",
			path:     func(t *testing.T) string { return writeConfig(t, "[layout]\nstifness = 1\n") },
			wantCode: apperrors.ErrCodeInvalidConfig,
		},
		{
			name:     "unknown section",
			path:     func(t *testing.T) string { return writeConfig(t, "[cache]\nttl = 1\n") },
			wantCode: apperrors.ErrCodeInvalidConfig,
		},
		{
			name:     "malformed",
			path:     func(t *testing.T) string { return writeConfig(t, "[layout\n") },
			wantCode: apperrors.ErrCodeInvalidConfig,
		},
		{
			name:     "wrong type",
			path:     func(t *testing.T) string { return writeConfig(t, "[route]\nspacing = \"wide\"\n") },
			wantCode: apperrors.ErrCodeInvalidConfig,
		},
		{
			name:     "missing explicit file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			wantCode: apperrors.ErrCodeFileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path(t))
			if !apperrors.Is(err, tt.wantCode) {
				t.Errorf("LoadConfig() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() without a file error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}

	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, appName, configFile)
	if err := os.WriteFile(path, []byte("[route]\nspacing = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Route.Spacing != 40 || cfg.Path != path {
		t.Errorf("LoadConfig() = spacing %v from %q, want 40 from %q", cfg.Route.Spacing, cfg.Path, path)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Route.Spacing = 12
	cfg.Render.Scale = 2

	opts := cfg.Options()
	if opts.Spacing != 12 || opts.Render.Scale != 2 {
		t.Errorf("Options() = spacing %v scale %v, want 12 and 2", opts.Spacing, opts.Render.Scale)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("default config options do not validate: %v", err)
	}

	// The options own their format slice.
	opts.Formats[0] = "png"
	if cfg.Render.Formats[0] != "svg" {
		t.Error("Options() shares the format slice with the config")
	}
}
