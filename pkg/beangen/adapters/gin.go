package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toyz/beangen/pkg/beangen"
)

// GinAdapter implements beangen.WebServer for the Gin framework
type GinAdapter struct {
	engine *gin.Engine
	server *http.Server
	guard  stopGuard
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a Gin adapter with panic recovery and no built-in request log
func NewDefaultGinAdapter() *GinAdapter {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	return NewGinAdapter(engine)
}

// RegisterRoute registers a route with the Gin engine
func (ga *GinAdapter) RegisterRoute(method, path string, handler beangen.HandlerFunc, middlewares ...beangen.MiddlewareFunc) {
	chained := beangen.Chain(handler, middlewares...)

	ga.engine.Handle(method, path, func(c *gin.Context) {
		ctx := &GinRequestContext{ctx: c}
		if err := chained(ctx); err != nil && !c.Writer.Written() {
			_ = beangen.WriteError(ctx, err)
		}
	})
}

// Start serves on addr until Stop is called. After Stop it returns nil.
func (ga *GinAdapter) Start(addr string) error {
	var server *http.Server
	if !ga.guard.start(func() {
		ga.server = &http.Server{Addr: addr, Handler: ga.engine}
		server = ga.server
	}) {
		return nil
	}

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully
func (ga *GinAdapter) Stop(ctx context.Context) error {
	var server *http.Server
	ga.guard.stop(func() { server = ga.server })

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// GinRequestContext wraps gin.Context to implement beangen.RequestContext
type GinRequestContext struct {
	ctx *gin.Context
}

func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

func (grc *GinRequestContext) Header(key string) string {
	return grc.ctx.GetHeader(key)
}

func (grc *GinRequestContext) Body() ([]byte, error) {
	return io.ReadAll(grc.ctx.Request.Body)
}

func (grc *GinRequestContext) SetHeader(key, value string) {
	grc.ctx.Header(key, value)
}

func (grc *GinRequestContext) JSON(code int, v interface{}) error {
	grc.ctx.JSON(code, v)
	return nil
}

func (grc *GinRequestContext) Status() int {
	return grc.ctx.Writer.Status()
}
