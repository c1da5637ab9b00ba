package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toyz/beangen/internal/cli"
	"github.com/toyz/beangen/pkg/beangen"
	"github.com/toyz/beangen/pkg/beangen/adapters"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON render endpoint over HTTP",
		Long: `Serve starts an HTTP service answering POST /v1/render with the sources
generated for a JSON model and GET /healthz with {"status":"ok"}. Every
request is access-logged with a request id echoed in X-Request-ID.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", cli.DefaultServerAddr, "Listen address")
	cmd.Flags().String("framework", cli.DefaultFramework, "HTTP framework: gin, echo or fiber")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runServe(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	config, err := loadConfig(cmd, nil)
	if err != nil {
		return report(cmd, verbose, err)
	}

	logger, err := newLogger(config.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	server, err := adapters.New(config.Server.Framework)
	if err != nil {
		return err
	}
	beangen.NewRenderService(config.EmitOptions(), logger).Register(server)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", config.Server.Addr), zap.String("server", server.Name()))
		errCh <- server.Start(config.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		return err
	}
	return <-errCh
}
