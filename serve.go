package streamslice

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/miyingqi/streamslice/internal/byterange"
	"github.com/miyingqi/streamslice/internal/framing"
	"github.com/miyingqi/streamslice/internal/metrics"
	"github.com/miyingqi/streamslice/internal/mimetype"
	"github.com/miyingqi/streamslice/internal/stream"
)

// ServeConfig 单个媒体路由的流式配置
type ServeConfig struct {
	// BufferSize 每块字节数，默认8192
	BufferSize int
	// RateLimit 每个响应的字节/秒上限，0为不限速
	RateLimit int
	Policy    byterange.Policy
	Metrics   *metrics.Collector
	// Opener 为空时打开本地文件
	Opener Opener
	// Route 指标标签，为空时使用请求路径
	Route string
}

// DefaultServeConfig 默认配置：8KB块、严格范围校验
func DefaultServeConfig() ServeConfig {
	return ServeConfig{
		BufferSize: stream.DefaultBufferSize,
		Policy:     byterange.Policy{Strict: true},
	}
}

func (cfg ServeConfig) route(c *Context) string {
	if cfg.Route != "" {
		return cfg.Route
	}
	return c.Path()
}

// FileHandler 每个请求独立打开 path 并按 Range 头返回完整或部分内容
func FileHandler(path string, cfg ServeConfig) HandlerFunc {
	open := cfg.Opener
	if open == nil {
		open = openFile
	}
	return func(c *Context) {
		res, err := open(path)
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, fs.ErrNotExist) {
				code = http.StatusNotFound
			}
			logger("StreamSlice").Errorw("resource unavailable",
				"path", path,
				"status_code", code,
				"request_id", c.RequestID(),
				"error", err,
			)
			c.Fail(code)
			cfg.Metrics.ObserveRequest(cfg.route(c), code)
			return
		}
		c.ServeResource(res, cfg)
	}
}

// ServeResource 使用调用方提供的资源响应请求，资源在所有路径上都会被关闭
func (c *Context) ServeResource(res Resource, cfg ServeConfig) {
	size := res.Size()
	contentType := mimetype.Resolve(res.Name())
	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = stream.DefaultBufferSize
	}
	opts := stream.Options{
		BufferSize: bufSize,
		Limiter:    stream.NewLimiter(cfg.RateLimit, bufSize),
	}

	var f framing.Framing
	var body *stream.Body
	if header, ok := c.RangeHeader(); ok {
		iv, err := byterange.Resolve(header, size, cfg.Policy)
		if err != nil {
			f = framing.BuildUnsatisfiable(size, contentType)
		} else {
			f = framing.BuildPartial(iv, size, contentType)
			body = stream.Partial(res, iv, opts)
		}
	} else {
		f = framing.BuildFull(size, contentType)
		body = stream.Full(res, size, opts)
	}

	route := cfg.route(c)
	f.Apply(c.Writer.Header())
	c.SetStatus(f.Status)
	cfg.Metrics.ObserveRequest(route, f.Status)

	if body == nil {
		_ = res.Close()
		return
	}
	defer body.Close()
	if c.IsHead() {
		return
	}

	done := cfg.Metrics.StreamStarted()
	defer done()

	n, err := body.Drain(c.Context(), c.Writer)
	cfg.Metrics.ObserveBytes(route, n)
	if err == nil {
		return
	}
	l := logger("StreamSlice")
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		l.Debugw("client went away", "path", c.Path(), "bytes", n, "request_id", c.RequestID())
		return
	}
	cfg.Metrics.ObserveError(route)
	l.Errorw("stream aborted",
		"path", c.Path(),
		"bytes", n,
		"declared", f.ContentLength,
		"request_id", c.RequestID(),
		"error", err,
	)
}
