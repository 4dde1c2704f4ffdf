// Package testutil provides a fake marketplace backend for tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// BasePath is where the fake backend mounts its routes.
const BasePath = "/api"

// Call is one request received by the backend.
type Call struct {
	Method string
	Path   string // without BasePath
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Backend is an httptest server backed by a gin engine that records every
// request it receives.
type Backend struct {
	Server *httptest.Server
	Engine *gin.Engine
	api    *gin.RouterGroup

	mu    sync.Mutex
	calls []Call
}

// NewBackend starts a fake backend and closes it when t finishes.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{Engine: gin.New()}
	b.Engine.Use(b.record)
	b.api = b.Engine.Group(BasePath)
	b.Server = httptest.NewServer(b.Engine)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the server root, without BasePath.
func (b *Backend) URL() string {
	return b.Server.URL
}

// Handle registers h for method and path under BasePath.
func (b *Backend) Handle(method, path string, h gin.HandlerFunc) {
	b.api.Handle(method, path, h)
}

// Reply registers a handler answering with status and a JSON body.
func (b *Backend) Reply(method, path string, status int, body any) {
	b.Handle(method, path, func(c *gin.Context) {
		c.JSON(status, body)
	})
}

// ReplyOK registers a handler answering 200 with a success envelope.
func (b *Backend) ReplyOK(method, path string, data any) {
	b.Reply(method, path, http.StatusOK, OK(data))
}

// Calls returns a copy of every recorded request.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// LastCall returns the most recent request, or false if none arrived.
func (b *Backend) LastCall() (Call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) == 0 {
		return Call{}, false
	}
	return b.calls[len(b.calls)-1], true
}

func (b *Backend) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}

	path := c.Request.URL.Path
	if len(path) >= len(BasePath) && path[:len(BasePath)] == BasePath {
		path = path[len(BasePath):]
	}

	b.mu.Lock()
	b.calls = append(b.calls, Call{
		Method: c.Request.Method,
		Path:   path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	b.mu.Unlock()

	c.Next()
}

// OK builds a success envelope.
func OK(data any) gin.H {
	return gin.H{"code": 0, "message": "success", "data": data}
}

// Fail builds a failure envelope.
func Fail(code int, message string) gin.H {
	return gin.H{"code": code, "message": message, "data": nil}
}
