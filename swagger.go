package streamslice

import (
	"net/http"

	_ "github.com/miyingqi/streamslice/docs"
	"github.com/swaggo/swag"
)

// RegisterSwagger 挂载 /swagger 文档路由
func RegisterSwagger(r *Router) {
	h := SwaggerHandler()
	r.GET("/swagger", h)
	r.GET("/swagger/index.html", h)
	r.GET("/swagger/doc.json", h)
}

// SwaggerHandler 处理 Swagger UI 请求
func SwaggerHandler() HandlerFunc {
	return func(c *Context) {
		switch c.Path() {
		case "/swagger/doc.json":
			doc, err := swag.ReadDoc()
			if err != nil {
				logger("StreamSlice").Errorw("read swagger doc", "error", err)
				c.InternalServerError("swagger doc unavailable")
				return
			}
			c.SetHeader("Content-Type", "application/json")
			c.SetStatus(http.StatusOK)
			_, _ = c.Write([]byte(doc))
		case "/swagger", "/swagger/":
			http.Redirect(c.Writer, c.Request, "/swagger/index.html", http.StatusFound)
		case "/swagger/index.html":
			c.SetHeader("Content-Type", "text/html; charset=utf-8")
			c.SetStatus(http.StatusOK)
			_, _ = c.Write([]byte(SwaggerIndexHTML))
		default:
			c.NotFound("Not Found")
		}
	}
}

// SwaggerIndexHTML 是 Swagger UI 的 HTML 页面
const SwaggerIndexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Swagger UI</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "/swagger/doc.json",
                dom_id: '#swagger-ui',
                deepLinking: true
            });
        };
    </script>
</body>
</html>`
