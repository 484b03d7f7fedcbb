package streamslice

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 按级别创建控制台日志器
func NewLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if s := strings.TrimSpace(level); s != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
		lvl = parsed
	}

	conf := zap.NewProductionConfig()
	conf.Level = zap.NewAtomicLevelAt(lvl)
	conf.Encoding = "console"
	conf.Sampling = nil
	conf.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return conf.Build()
}

// SetLogger 替换全局日志器
func SetLogger(l *zap.Logger) {
	zap.ReplaceGlobals(l)
}

// logger 按模块名取日志器，未设置时为空操作
func logger(module string) *zap.SugaredLogger {
	return zap.S().Named(module)
}
