package streamslice

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serve(app *App, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouterDispatch(t *testing.T) {
	app := New()
	app.Router().GET("/", func(c *Context) { c.SendString(http.StatusOK, "root") })
	app.Router().GET("/media/:name", func(c *Context) { c.SendString(http.StatusOK, c.Param("name")) })

	rec := serve(app, http.MethodGet, "/")
	assert.Equal(t, "root", rec.Body.String())

	rec = serve(app, http.MethodGet, "/media/trailer")
	assert.Equal(t, "trailer", rec.Body.String())

	rec = serve(app, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404 Not Found", rec.Body.String())
}

func TestRouterMethodNotAllowed(t *testing.T) {
	app := New()
	app.Router().Media("/video", func(c *Context) { c.SetStatus(http.StatusOK) })

	rec := serve(app, http.MethodPost, "/video")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestRouteGroup(t *testing.T) {
	app := New()
	g := app.Router().Group("/media")
	g.Use(func(c *Context) { c.SetHeader("X-Group", "media") })
	g.GET("/movie", func(c *Context) { c.SendString(http.StatusOK, "movie") })
	g.Media("/", func(c *Context) { c.SendString(http.StatusOK, "index") })

	rec := serve(app, http.MethodGet, "/media/movie")
	assert.Equal(t, "movie", rec.Body.String())
	assert.Equal(t, "media", rec.Header().Get("X-Group"))

	rec = serve(app, http.MethodHead, "/media")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGroupMiddlewareAbort(t *testing.T) {
	app := New()
	g := app.Router().Group("/private")
	g.Use(func(c *Context) { c.Fail(http.StatusForbidden) })
	g.GET("/file", func(c *Context) { c.SendString(http.StatusOK, "secret") })

	rec := serve(app, http.MethodGet, "/private/file")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCustomNotFound(t *testing.T) {
	app := New()
	app.Router().NotFound(func(c *Context) { c.SendString(http.StatusNotFound, "no media here") })
	rec := serve(app, http.MethodGet, "/x")
	assert.Equal(t, "no media here", rec.Body.String())
}

func TestAddWithoutHandlersPanics(t *testing.T) {
	assert.Panics(t, func() { NewRouter().GET("/") })
}
