package metrics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "streamslice"

// Collector 统计已服务的请求与流出的字节，nil Collector 的所有方法均为空操作
type Collector struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	inFlight prometheus.Gauge
}

// NewCollector 创建带独立注册表的采集器
func NewCollector(namespace string) *Collector {
	if strings.TrimSpace(namespace) == "" {
		namespace = defaultNamespace
	}
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Media requests served, by route and status code.",
		}, []string{"route", "code"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "bytes_total",
			Help:      "Body bytes written to clients.",
		}, []string{"route"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "errors_total",
			Help:      "Streams that ended with a read or write failure.",
		}, []string{"route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "in_flight",
			Help:      "Bodies currently being streamed.",
		}),
	}
	reg.MustRegister(c.requests, c.bytes, c.errors, c.inFlight)
	return c
}

// Registry 返回采集器使用的注册表
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler 暴露指标的 HTTP 处理器
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest 记录一次已完成的请求
func (c *Collector) ObserveRequest(route string, code int) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ObserveBytes 记录写出的字节
func (c *Collector) ObserveBytes(route string, n int64) {
	if c == nil || n <= 0 {
		return
	}
	c.bytes.WithLabelValues(route).Add(float64(n))
}

// ObserveError 记录一次中途失败的流
func (c *Collector) ObserveError(route string) {
	if c == nil {
		return
	}
	c.errors.WithLabelValues(route).Inc()
}

// StreamStarted 标记流开始，返回的函数在流结束时调用
func (c *Collector) StreamStarted() func() {
	if c == nil {
		return func() {}
	}
	c.inFlight.Inc()
	return c.inFlight.Dec
}
