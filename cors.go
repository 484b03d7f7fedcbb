package streamslice

import (
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// CorsConfig 跨域配置，播放器跨域拉流时需要读取 Content-Range 等头
type CorsConfig struct {
	AllowOrigins     []string
	AllowOriginRegex []*regexp.Regexp
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

func NewCors(origins ...string) *CorsConfig {
	return &CorsConfig{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Range", "Accept", "Accept-Language", "Content-Language", "Content-Type"},
		ExposeHeaders: []string{"Content-Range", "Accept-Ranges", "Content-Length", HeaderRequestID},
		MaxAge:        600,
	}
}

func (cfg *CorsConfig) allowOrigin(origin string) bool {
	if slices.Contains(cfg.AllowOrigins, "*") || slices.Contains(cfg.AllowOrigins, origin) {
		return true
	}
	for _, re := range cfg.AllowOriginRegex {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

func (cfg *CorsConfig) Handle(c *Context) {
	origin := c.Request.Header.Get("Origin")
	if origin == "" || !cfg.allowOrigin(origin) {
		c.Next()
		return
	}

	h := c.Writer.Header()
	h.Add("Vary", "Origin")
	if slices.Contains(cfg.AllowOrigins, "*") && !cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Origin", "*")
	} else {
		h.Set("Access-Control-Allow-Origin", origin)
	}
	if cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}

	// 预检请求
	if c.Method() == http.MethodOptions && c.Request.Header.Get("Access-Control-Request-Method") != "" {
		h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
		h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
		if cfg.MaxAge > 0 {
			h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}
		c.Fail(http.StatusNoContent)
		return
	}

	if len(cfg.ExposeHeaders) > 0 {
		h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
	}
	c.Next()
}
