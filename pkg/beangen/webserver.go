package beangen

import (
	"context"
	"net/http"
)

// WebServer is the contract the framework adapters implement
type WebServer interface {
	// Route registration; the first middleware is the outermost
	RegisterRoute(method, path string, handler HandlerFunc, middlewares ...MiddlewareFunc)

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	// Server information
	Name() string
}

// RequestContext is the framework-agnostic view of one HTTP exchange
type RequestContext interface {
	Method() string
	Path() string
	Header(key string) string
	Body() ([]byte, error)

	SetHeader(key, value string)
	JSON(code int, v interface{}) error
	// Status is the response status written so far
	Status() int
}

// HandlerFunc defines the signature for HTTP handlers
type HandlerFunc func(RequestContext) error

// MiddlewareFunc defines the signature for middleware
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Chain wraps handler so that middlewares[0] runs first
func Chain(handler HandlerFunc, middlewares ...MiddlewareFunc) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError answers with 500 and err's message; adapters call it for errors handlers return
func WriteError(ctx RequestContext, err error) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
