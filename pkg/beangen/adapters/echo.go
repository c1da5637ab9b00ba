package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/beangen/pkg/beangen"
)

// EchoAdapter implements beangen.WebServer for the Echo framework
type EchoAdapter struct {
	echo  *echo.Echo
	guard stopGuard
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{echo: e}
}

// NewDefaultEchoAdapter creates an Echo adapter with panic recovery and a quiet startup
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	return NewEchoAdapter(e)
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method, path string, handler beangen.HandlerFunc, middlewares ...beangen.MiddlewareFunc) {
	chained := beangen.Chain(handler, middlewares...)

	ea.echo.Add(method, path, func(c echo.Context) error {
		ctx := &EchoRequestContext{ctx: c}
		if err := chained(ctx); err != nil && !c.Response().Committed {
			return beangen.WriteError(ctx, err)
		}
		return nil
	})
}

// Start serves on addr until Stop is called. After Stop it returns nil.
func (ea *EchoAdapter) Start(addr string) error {
	if !ea.guard.start(nil) {
		return nil
	}
	if err := ea.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	ea.guard.stop(nil)
	return ea.echo.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEcho returns the underlying Echo instance
func (ea *EchoAdapter) GetEcho() *echo.Echo {
	return ea.echo
}

// EchoRequestContext wraps echo.Context to implement beangen.RequestContext
type EchoRequestContext struct {
	ctx echo.Context
}

func (erc *EchoRequestContext) Method() string {
	return erc.ctx.Request().Method
}

func (erc *EchoRequestContext) Path() string {
	return erc.ctx.Request().URL.Path
}

func (erc *EchoRequestContext) Header(key string) string {
	return erc.ctx.Request().Header.Get(key)
}

func (erc *EchoRequestContext) Body() ([]byte, error) {
	return io.ReadAll(erc.ctx.Request().Body)
}

func (erc *EchoRequestContext) SetHeader(key, value string) {
	erc.ctx.Response().Header().Set(key, value)
}

func (erc *EchoRequestContext) JSON(code int, v interface{}) error {
	return erc.ctx.JSON(code, v)
}

func (erc *EchoRequestContext) Status() int {
	return erc.ctx.Response().Status
}
