package streamslice

import (
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-Id"

// Engine 中间件接口
type Engine interface {
	Handle(*Context)
}

// EngineFunc 将函数适配为中间件
type EngineFunc func(*Context)

func (f EngineFunc) Handle(c *Context) { f(c) }

// Recovery 捕获处理器中的 panic，未写出响应时返回500
type Recovery struct{}

func NewRecovery() *Recovery {
	return &Recovery{}
}

func (m *Recovery) Handle(c *Context) {
	defer func() {
		if r := recover(); r != nil {
			if r == http.ErrAbortHandler {
				panic(r)
			}
			logger("HTTP").Errorw("handler panic",
				"panic", r,
				"path", c.Path(),
				"request_id", c.RequestID(),
				"stack", string(debug.Stack()),
			)
			if !c.Written() {
				c.Fail(http.StatusInternalServerError)
			}
			c.Abort()
		}
	}()
	c.Next()
}

// RequestID 透传或生成请求ID
type RequestID struct {
	generate func() string
}

func NewRequestID() *RequestID {
	return &RequestID{generate: uuid.NewString}
}

func (m *RequestID) Handle(c *Context) {
	id := c.RequestID()
	if id == "" {
		id = m.generate()
		c.SetRequestID(id)
	}
	c.SetHeader(HeaderRequestID, id)
	c.Next()
}
