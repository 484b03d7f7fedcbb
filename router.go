package streamslice

import (
	"net/http"
	"sort"
	"strings"

	"github.com/miyingqi/streamslice/internal/route"
)

type Router struct {
	trees    map[string]*route.Node
	handlers map[string]HandlersChain
	notFound HandlerFunc
}

// NewRouter 创建路由
func NewRouter() *Router {
	return &Router{
		trees:    make(map[string]*route.Node),
		handlers: make(map[string]HandlersChain),
		notFound: HTTPNotFound,
	}
}

func routeKey(method, pattern string) string {
	return method + " " + pattern
}

// Add 注册路由，重复注册时后者覆盖前者
func (r *Router) Add(method, path string, handlers ...HandlerFunc) {
	if len(handlers) == 0 {
		panic("streamslice: route " + path + " registered without handlers")
	}
	tree, ok := r.trees[method]
	if !ok {
		tree = route.NewTree()
		r.trees[method] = tree
	}
	pattern := tree.Insert(path)
	r.handlers[routeKey(method, pattern)] = handlers
}

func (r *Router) GET(path string, handlers ...HandlerFunc) {
	r.Add(http.MethodGet, path, handlers...)
}

func (r *Router) HEAD(path string, handlers ...HandlerFunc) {
	r.Add(http.MethodHead, path, handlers...)
}

func (r *Router) OPTIONS(path string, handlers ...HandlerFunc) {
	r.Add(http.MethodOptions, path, handlers...)
}

// Media 同时注册 GET 与 HEAD
func (r *Router) Media(path string, handlers ...HandlerFunc) {
	r.GET(path, handlers...)
	r.HEAD(path, handlers...)
}

// NotFound 自定义404处理器
func (r *Router) NotFound(handler HandlerFunc) {
	r.notFound = handler
}

// Group 创建路由组
func (r *Router) Group(prefix string) *RouteGroup {
	return &RouteGroup{router: r, prefix: route.Clean(prefix)}
}

// Handle 作为处理器链的最后一环分发请求
func (r *Router) Handle(c *Context) {
	if pattern, params, ok := r.trees[c.method].Find(c.path); ok {
		c.setParams(params)
		for _, h := range r.handlers[routeKey(c.method, pattern)] {
			if c.aborted {
				return
			}
			h(c)
		}
		return
	}

	if allowed := r.allowed(c.path); len(allowed) > 0 {
		c.SetHeader("Allow", allowed...)
		c.Fail(http.StatusMethodNotAllowed)
		return
	}
	r.notFound(c)
}

func (r *Router) allowed(path string) []string {
	var methods []string
	for method, tree := range r.trees {
		if _, _, ok := tree.Find(path); ok {
			methods = append(methods, method)
		}
	}
	sort.Strings(methods)
	return methods
}

// RouteGroup 共享前缀与中间件的路由组
type RouteGroup struct {
	router      *Router
	prefix      string
	middlewares HandlersChain
}

// Use 为组内后续注册的路由添加中间件
func (g *RouteGroup) Use(handlers ...HandlerFunc) {
	g.middlewares = append(g.middlewares, handlers...)
}

func (g *RouteGroup) join(path string) string {
	if g.prefix == "/" {
		return route.Clean(path)
	}
	return g.prefix + route.Clean("/"+strings.TrimPrefix(path, "/"))
}

func (g *RouteGroup) chain(handlers []HandlerFunc) HandlersChain {
	out := make(HandlersChain, 0, len(g.middlewares)+len(handlers))
	out = append(out, g.middlewares...)
	return append(out, handlers...)
}

func (g *RouteGroup) GET(path string, handlers ...HandlerFunc) {
	g.router.GET(g.join(path), g.chain(handlers)...)
}

func (g *RouteGroup) HEAD(path string, handlers ...HandlerFunc) {
	g.router.HEAD(g.join(path), g.chain(handlers)...)
}

func (g *RouteGroup) Media(path string, handlers ...HandlerFunc) {
	g.router.Media(g.join(path), g.chain(handlers)...)
}
