package cli

import (
	"fmt"

	"github.com/miyingqi/streamslice"
	"github.com/miyingqi/streamslice/docs"
	"github.com/miyingqi/streamslice/internal/config"
	"github.com/miyingqi/streamslice/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type serveFlags struct {
	configPath  string
	addr        string
	file        string
	route       string
	logLevel    string
	bufferSize  int
	rateLimit   int
	rangePolicy string
}

func ServeCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the media server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			applyFlags(cmd, &flags, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger, err := streamslice.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			streamslice.SetLogger(logger)

			app, err := BuildApp(cfg)
			if err != nil {
				return err
			}
			return app.Run(cfg.Addr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "Path to config file (toml, yaml or json)")
	f.StringVar(&flags.addr, "addr", "", "Listen address, e.g. 127.0.0.1:8080")
	f.StringVar(&flags.file, "file", "", "Serve a single media file, replacing configured routes")
	f.StringVar(&flags.route, "route", "/", "Route for --file")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.IntVar(&flags.bufferSize, "buffer-size", 0, "Chunk size in bytes")
	f.IntVar(&flags.rateLimit, "rate-limit", 0, "Per-response limit in bytes/s, 0 for unlimited")
	f.StringVar(&flags.rangePolicy, "range-policy", "", "strict or lenient")
	return cmd
}

// applyFlags 命令行参数覆盖配置文件
func applyFlags(cmd *cobra.Command, flags *serveFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("addr") {
		cfg.Addr = flags.addr
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("buffer-size") {
		cfg.BufferSize = flags.bufferSize
	}
	if changed("rate-limit") {
		cfg.RateLimit = flags.rateLimit
	}
	if changed("range-policy") {
		cfg.RangePolicy = flags.rangePolicy
	}
	if changed("file") {
		cfg.Routes = []config.Route{{Path: flags.route, File: flags.file}}
	}
}

// BuildApp 按配置挂载媒体路由、指标与文档
func BuildApp(cfg *config.Config) (*streamslice.App, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	app := streamslice.New()
	if len(cfg.CorsOrigins) > 0 {
		app.Use(streamslice.NewCors(cfg.CorsOrigins...))
	}
	r := app.Router()

	var collector *metrics.Collector
	if cfg.MetricsPath != "" {
		collector = metrics.NewCollector("")
		h := collector.Handler()
		r.GET(cfg.MetricsPath, func(c *streamslice.Context) {
			h.ServeHTTP(c.Writer, c.Request)
		})
	}

	for _, route := range cfg.Routes {
		r.Media(route.Path, streamslice.FileHandler(route.File, streamslice.ServeConfig{
			BufferSize: cfg.BufferSize,
			RateLimit:  cfg.RateLimit,
			Policy:     policy,
			Metrics:    collector,
			Route:      route.Path,
		}))
		zap.S().Named("StreamSlice").Infof("Serving %s at %s", route.File, route.Path)
	}

	if cfg.Swagger {
		docs.SwaggerInfo.Host = cfg.Addr
		streamslice.RegisterSwagger(r)
	}
	return app, nil
}
