package streamslice

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"
)

type App struct {
	core        *core
	router      *Router
	middlewares []Engine
	once        sync.Once
}

// New 创建应用，默认安装 Recovery、RequestID 与访问日志中间件
func New() *App {
	return &App{
		core:   newCore(),
		router: NewRouter(),
		middlewares: []Engine{
			NewRecovery(),
			NewRequestID(),
			NewMiddlewareLog(),
		},
	}
}

// Router 返回路由器实例
func (h *App) Router() *Router {
	return h.router
}

// Use 添加中间件，需在处理第一个请求之前调用
func (h *App) Use(middlewares ...Engine) {
	h.middlewares = append(h.middlewares, middlewares...)
}

// Handler 返回可直接挂载到 http.Server 或 httptest 的处理器
func (h *App) Handler() http.Handler {
	h.once.Do(func() {
		h.core.addHandler(midToHandler(h.middlewares)...)
		h.core.addHandler(h.router.Handle)
	})
	return h.core
}

// Run 监听地址并阻塞，收到 SIGINT/SIGTERM 后优雅关闭
func (h *App) Run(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return h.RunListener(ctx, ln)
}

// RunListener 在给定监听器上服务直到 ctx 结束
func (h *App) RunListener(ctx context.Context, ln net.Listener) error {
	l := logger("StreamSlice")
	logAddresses(ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		l.Errorf("Server failed: %v", err)
		return err
	case <-ctx.Done():
	}

	l.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		l.Errorf("Graceful shutdown failed: %v", err)
		_ = h.core.server.Close()
		return err
	}
	l.Info("Server shutdown complete")
	return nil
}

// Serve 在监听器上接收连接
func (h *App) Serve(ln net.Listener) error {
	h.core.server.Handler = h.Handler()
	return h.core.server.Serve(ln)
}

// Shutdown 停止接收新连接并等待进行中的响应结束
func (h *App) Shutdown(ctx context.Context) error {
	return h.core.server.Shutdown(ctx)
}

type core struct {
	server       *http.Server
	handlerChain HandlersChain
	contextPool  sync.Pool // 上下文池，复用ctx避免GC
}

func newCore() *core {
	return &core{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			// 响应体可能持续很久，不设置写超时
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1MB
		},
		contextPool: sync.Pool{
			New: func() any {
				return newContext()
			},
		},
	}
}

// ServeHTTP 在当前 goroutine 中执行处理器链
func (s *core) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	ctx := s.contextPool.Get().(*Context)
	ctx.Reset(writer, request)
	ctx.SetHandles(s.handlerChain)
	defer func() {
		ctx.release()
		s.contextPool.Put(ctx)
	}()
	ctx.Next()
}

func (s *core) addHandler(handler ...HandlerFunc) {
	s.handlerChain = append(s.handlerChain, handler...)
}

func midToHandler(middlewares []Engine) []HandlerFunc {
	handlers := make([]HandlerFunc, 0, len(middlewares))
	for _, middleware := range middlewares {
		handlers = append(handlers, middleware.Handle)
	}
	return handlers
}

func logAddresses(addr net.Addr) {
	l := logger("StreamSlice")
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		l.Infof("Server started at %s", addr)
		return
	}
	port := strconv.Itoa(tcp.Port)
	if !tcp.IP.IsUnspecified() {
		l.Infof("Server started at %s", tcp.IP)
		l.Infof("Running http://%s", net.JoinHostPort(tcp.IP.String(), port))
		return
	}
	l.Info("Server started at all address")
	for _, ip := range getAllIPs() {
		l.Infof("Running http://%s", net.JoinHostPort(ip, port))
	}
}
