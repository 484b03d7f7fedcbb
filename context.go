package streamslice

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

type HandlerFunc func(*Context)
type HandlersChain []HandlerFunc

// Context 请求上下文
type Context struct {
	// 原始 HTTP 对象
	Request *http.Request
	Writer  http.ResponseWriter

	writer responseWriter

	// 请求信息
	method string
	path   string
	params map[string]string

	// 数据存储
	store map[string]any

	// 处理器链
	handlers HandlersChain
	index    int
	aborted  bool

	// 性能追踪
	startTime time.Time
	requestID string
}

func newContext() *Context {
	return &Context{
		params: make(map[string]string),
		store:  make(map[string]any),
		index:  -1,
	}
}

// Reset 池化复用前重置
func (c *Context) Reset(w http.ResponseWriter, r *http.Request) {
	c.writer.reset(w)
	c.Writer = &c.writer
	c.Request = r
	c.method = r.Method
	c.path = r.URL.Path
	clear(c.params)
	clear(c.store)
	c.handlers = nil
	c.index = -1
	c.aborted = false
	c.startTime = time.Now()
	c.requestID = r.Header.Get(HeaderRequestID)
}

// release 归还到池之前断开对请求的引用
func (c *Context) release() {
	c.writer.reset(nil)
	c.Writer = nil
	c.Request = nil
	c.handlers = nil
}

// SetHandles 设置处理器链
func (c *Context) SetHandles(handlers HandlersChain) {
	c.handlers = handlers
	c.index = -1
}

// Next 执行后续处理器
func (c *Context) Next() {
	c.index++
	for ; c.index < len(c.handlers) && !c.aborted; c.index++ {
		c.handlers[c.index](c)
	}
}

// Abort 停止执行后续处理器
func (c *Context) Abort() {
	c.aborted = true
}

func (c *Context) IsAborted() bool {
	return c.aborted
}

// Context 请求的 context，客户端断开时被取消
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

func (c *Context) Method() string { return c.method }
func (c *Context) Path() string   { return c.path }
func (c *Context) IsHead() bool   { return c.method == http.MethodHead }

func (c *Context) UserAgent() string {
	return c.Request.UserAgent()
}

// ClientIP 优先使用反向代理头
func (c *Context) ClientIP() string {
	if xff := c.Request.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.Request.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

// RangeHeader 返回 Range 头及其是否存在（存在但为空也算存在）
func (c *Context) RangeHeader() (string, bool) {
	values, ok := c.Request.Header["Range"]
	if !ok {
		return "", false
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

func (c *Context) RequestID() string { return c.requestID }

func (c *Context) SetRequestID(id string) {
	c.requestID = id
}

// Param 路径参数
func (c *Context) Param(key string) string {
	return c.params[key]
}

func (c *Context) setParams(params map[string]string) {
	for k, v := range params {
		c.params[k] = v
	}
}

func (c *Context) Set(key string, value any) {
	c.store[key] = value
}

func (c *Context) Get(key string) (any, bool) {
	v, ok := c.store[key]
	return v, ok
}

// SetHeader 多个值用逗号连接
func (c *Context) SetHeader(key string, values ...string) {
	if len(values) == 0 {
		return
	}
	c.writer.Header().Set(key, strings.Join(values, ", "))
}

// SetStatus 写出状态码（只生效一次）
func (c *Context) SetStatus(code int) {
	c.writer.WriteHeader(code)
}

// StatusCode 已写出的状态码，未写出时为200
func (c *Context) StatusCode() int {
	return c.writer.Status()
}

// Written 响应头是否已经写出
func (c *Context) Written() bool {
	return c.writer.Written()
}

// BytesWritten 已写出的响应体字节数
func (c *Context) BytesWritten() int64 {
	return c.writer.size
}

func (c *Context) Write(b []byte) (int, error) {
	return c.writer.Write(b)
}

// Elapsed 请求开始至今的耗时
func (c *Context) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (c *Context) SendString(code int, body string) {
	c.SetHeader("Content-Type", "text/plain; charset=utf-8")
	c.SetStatus(code)
	_, _ = c.writer.Write([]byte(body))
}

// Fail 只写状态码，不带响应体
func (c *Context) Fail(code int) {
	c.SetStatus(code)
	c.Abort()
}

func (c *Context) NotFound(message string) {
	c.SendString(http.StatusNotFound, message)
}

func (c *Context) InternalServerError(message string) {
	c.SendString(http.StatusInternalServerError, message)
}

// HTTPNotFound 默认的404处理器
func HTTPNotFound(c *Context) {
	c.NotFound("404 Not Found")
}

// responseWriter 记录状态码与写出字节
type responseWriter struct {
	http.ResponseWriter
	status      int
	size        int64
	wroteHeader bool
}

func (w *responseWriter) reset(rw http.ResponseWriter) {
	w.ResponseWriter = rw
	w.status = http.StatusOK
	w.size = 0
	w.wroteHeader = false
}

func (w *responseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

func (w *responseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseWriter) Status() int   { return w.status }
func (w *responseWriter) Written() bool { return w.wroteHeader }

// Unwrap 供 http.ResponseController 使用
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
