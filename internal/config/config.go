package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miyingqi/streamslice/internal/byterange"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "STREAMSLICE"
	defaultName = "streamslice"
)

// Route 一个路由只服务一个文件
type Route struct {
	Path string `mapstructure:"path"`
	File string `mapstructure:"file"`
}

type Config struct {
	Addr         string   `mapstructure:"addr"`
	LogLevel     string   `mapstructure:"log_level"`
	BufferSize   int      `mapstructure:"buffer_size"`
	RateLimit    int      `mapstructure:"rate_limit"`
	RangePolicy  string   `mapstructure:"range_policy"`
	SuffixRanges bool     `mapstructure:"suffix_ranges"`
	MetricsPath  string   `mapstructure:"metrics_path"`
	Swagger      bool     `mapstructure:"swagger"`
	CorsOrigins  []string `mapstructure:"cors_origins"`
	Routes       []Route  `mapstructure:"routes"`
}

// Load 读取配置文件（toml/yaml/json，按扩展名识别）、环境变量与默认值
// configPath 为空时在当前目录和 ~/.streamslice 中查找 streamslice.*，找不到时只使用默认值
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(expandPath(configPath))
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".streamslice"))
		}
		v.SetConfigName(defaultName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	for i := range cfg.Routes {
		cfg.Routes[i].File = expandPath(cfg.Routes[i].File)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("buffer_size", 8192)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("range_policy", "strict")
	v.SetDefault("suffix_ranges", false)
	v.SetDefault("metrics_path", "/metrics")
	v.SetDefault("swagger", true)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("routes", []map[string]any{
		{"path": "/", "file": "video.mp4"},
	})
}

// Validate 检查配置的一致性
func (c *Config) Validate() error {
	if len(c.Routes) == 0 {
		return errors.New("at least one route is required")
	}
	seen := make(map[string]struct{}, len(c.Routes))
	for _, r := range c.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("route path %q must start with /", r.Path)
		}
		if strings.TrimSpace(r.File) == "" {
			return fmt.Errorf("route %s has no file", r.Path)
		}
		if _, dup := seen[r.Path]; dup {
			return fmt.Errorf("duplicate route %s", r.Path)
		}
		seen[r.Path] = struct{}{}
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", c.BufferSize)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %d", c.RateLimit)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.MetricsPath != "" && !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("metrics_path %q must start with /", c.MetricsPath)
	}
	return nil
}

// Policy 配置对应的范围校验策略
func (c *Config) Policy() (byterange.Policy, error) {
	return byterange.ParsePolicy(c.RangePolicy, c.SuffixRanges)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
