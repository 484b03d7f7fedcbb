package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miyingqi/streamslice/internal/byterange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8192, cfg.BufferSize)
	assert.Equal(t, "strict", cfg.RangePolicy)
	assert.Equal(t, "/metrics", cfg.MetricsPath)
	assert.True(t, cfg.Swagger)
	require.Len(t, cfg.Routes, 1)
	assert.Equal(t, Route{Path: "/", File: "video.mp4"}, cfg.Routes[0])
	require.NoError(t, cfg.Validate())
}

func TestLoadTomlFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "media.toml")
	content := `
addr = ":9000"
buffer_size = 4096
range_policy = "lenient"
suffix_ranges = true
cors_origins = ["https://player.example"]

[[routes]]
path = "/movie"
file = "~/movie.mp4"

[[routes]]
path = "/song"
file = "/srv/song.mp3"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.Equal(t, []string{"https://player.example"}, cfg.CorsOrigins)
	require.Len(t, cfg.Routes, 2)
	assert.Equal(t, filepath.Join(home, "movie.mp4"), cfg.Routes[0].File)
	assert.Equal(t, "/srv/song.mp3", cfg.Routes[1].File)

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, byterange.Policy{Strict: false, Suffix: true}, p)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("STREAMSLICE_ADDR", "0.0.0.0:7000")
	t.Setenv("STREAMSLICE_BUFFER_SIZE", "1024")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Addr)
	assert.Equal(t, 1024, cfg.BufferSize)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	home := isolate(t)
	_, err := Load(filepath.Join(home, "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			BufferSize:  8192,
			RangePolicy: "strict",
			MetricsPath: "/metrics",
			Routes:      []Route{{Path: "/", File: "video.mp4"}},
		}
	}
	require.NoError(t, base().Validate())

	cases := map[string]func(*Config){
		"no routes":      func(c *Config) { c.Routes = nil },
		"relative path":  func(c *Config) { c.Routes[0].Path = "video" },
		"missing file":   func(c *Config) { c.Routes[0].File = " " },
		"duplicate":      func(c *Config) { c.Routes = append(c.Routes, Route{Path: "/", File: "b.mp4"}) },
		"buffer":         func(c *Config) { c.BufferSize = 0 },
		"rate":           func(c *Config) { c.RateLimit = -1 },
		"policy":         func(c *Config) { c.RangePolicy = "loose" },
		"metrics prefix": func(c *Config) { c.MetricsPath = "metrics" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
