package adapters

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/toyz/beangen/pkg/beangen"
)

// FiberAdapter wraps a Fiber app to implement beangen.WebServer
type FiberAdapter struct {
	app   *fiber.App
	guard stopGuard
}

// NewFiberAdapter creates a new Fiber adapter instance
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(beangen.ErrorResponse{Error: err.Error()})
		},
	})

	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a new Fiber adapter with panic recovery
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(recover.New())
	return adapter
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method, path string, handler beangen.HandlerFunc, middlewares ...beangen.MiddlewareFunc) {
	chained := beangen.Chain(handler, middlewares...)

	fa.app.Add(method, path, func(c *fiber.Ctx) error {
		ctx := &FiberRequestContext{ctx: c}
		if err := chained(ctx); err != nil {
			return beangen.WriteError(ctx, err)
		}
		return nil
	})
}

// Start starts the Fiber server. After Stop it returns nil.
func (fa *FiberAdapter) Start(addr string) error {
	if !fa.guard.start(nil) {
		return nil
	}
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	fa.guard.stop(nil)
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// GetApp returns the underlying Fiber app
func (fa *FiberAdapter) GetApp() *fiber.App {
	return fa.app
}

// FiberRequestContext wraps fiber.Ctx to implement beangen.RequestContext
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

func (frc *FiberRequestContext) Path() string {
	return frc.ctx.Path()
}

func (frc *FiberRequestContext) Header(key string) string {
	return frc.ctx.Get(key)
}

// Body copies the request body since fasthttp reuses its buffers
func (frc *FiberRequestContext) Body() ([]byte, error) {
	return append([]byte(nil), frc.ctx.Body()...), nil
}

func (frc *FiberRequestContext) SetHeader(key, value string) {
	frc.ctx.Set(key, value)
}

func (frc *FiberRequestContext) JSON(code int, v interface{}) error {
	return frc.ctx.Status(code).JSON(v)
}

func (frc *FiberRequestContext) Status() int {
	return frc.ctx.Response().StatusCode()
}
