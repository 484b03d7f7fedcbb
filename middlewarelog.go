package streamslice

import (
	"go.uber.org/zap"
)

type MiddlewareLog struct {
	logger *zap.SugaredLogger
}

// NewMiddlewareLog 创建访问日志中间件
func NewMiddlewareLog() *MiddlewareLog {
	return &MiddlewareLog{}
}

// SetLogger 自定义日志器
func (m *MiddlewareLog) SetLogger(l *zap.SugaredLogger) {
	m.logger = l
}

// Handle 请求处理完成后记录一条访问日志
func (m *MiddlewareLog) Handle(c *Context) {
	c.Next()

	l := m.logger
	if l == nil {
		l = logger("HTTP")
	}
	rangeHeader, _ := c.RangeHeader()
	l.Infow("request",
		"method", c.Method(),
		"path", c.Path(),
		"client_ip", c.ClientIP(),
		"status_code", c.StatusCode(),
		"bytes", c.BytesWritten(),
		"range", rangeHeader,
		"response_time_ms", float64(c.Elapsed().Microseconds())/1e3,
		"user_agent", c.UserAgent(),
		"request_id", c.RequestID(),
	)
}
