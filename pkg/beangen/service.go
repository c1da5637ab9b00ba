package beangen

import (
	"bytes"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service routes
const (
	RenderPath = "/v1/render"
	HealthPath = "/healthz"
)

// RequestIDHeader carries the id assigned to every request
const RequestIDHeader = "X-Request-ID"

// RenderResponse lists the rendered files in request order
type RenderResponse struct {
	Files []*GeneratedSource `json:"files"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status string `json:"status"`
}

// RenderService renders JSON targets over HTTP
type RenderService struct {
	opts   Options
	logger *zap.Logger
}

// NewRenderService creates a service; a nil logger discards access logs
func NewRenderService(opts Options, logger *zap.Logger) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderService{opts: opts, logger: logger}
}

// Register adds the service routes to server
func (s *RenderService) Register(server WebServer) {
	access := RequestLogger(s.logger)

	server.RegisterRoute(http.MethodPost, RenderPath, s.Render, access)
	server.RegisterRoute(http.MethodGet, HealthPath, s.Health, access)

	s.logger.Info("routes registered",
		zap.String("server", server.Name()),
		zap.Strings("routes", []string{http.MethodPost + " " + RenderPath, http.MethodGet + " " + HealthPath}))
}

// Render decodes one target or an array and answers with the rendered files
func (s *RenderService) Render(ctx RequestContext) error {
	body, err := ctx.Body()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	targets, err := DecodeTargets(bytes.NewReader(body))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, RenderResponse{Files: Generate(targets, s.opts)})
}

// Health reports that the service is up
func (s *RenderService) Health(ctx RequestContext) error {
	return ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// RequestLogger assigns a request id, echoes it in X-Request-ID and writes one
// access log entry per request. An incoming X-Request-ID is kept.
func RequestLogger(logger *zap.Logger) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx RequestContext) error {
			start := time.Now()

			requestID := ctx.Header(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx.SetHeader(RequestIDHeader, requestID)

			err := next(ctx)
			if err != nil {
				err = WriteError(ctx, err)
			}

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.Int("status", ctx.Status()),
				zap.Duration("latency", time.Since(start)),
			}
			if ctx.Status() >= http.StatusInternalServerError {
				logger.Error("request", fields...)
			} else {
				logger.Info("request", fields...)
			}
			return err
		}
	}
}
