package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomstack-labs/specloom/internal/cli/config"
	"github.com/loomstack-labs/specloom/internal/server"
	"github.com/loomstack-labs/specloom/pkg/check"
)

// shutdownTimeout bounds graceful shutdown on Ctrl+C.
const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Start the specloom HTTP API.

The API manages specification projects stored in the state database and
runs validation on demand:

  GET    /api/projects
  POST   /api/projects
  GET    /api/projects/{id}
  DELETE /api/projects/{id}
  GET    /api/projects/{id}/graph
  PUT    /api/projects/{id}/graph
  POST   /api/projects/{id}/validate
  POST   /api/projects/{id}/import
  GET    /api/projects/{id}/export`,
		Example: `  # Serve on the default address
  specloom serve

  # Serve on a custom address
  specloom serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	logger := config.GetLogger(cmd.Context())

	addr := cfg.Server.Addr
	if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
		addr = flagAddr
	}

	checkCfg, err := cfg.CheckConfig()
	if err != nil {
		return err
	}
	analyzer := check.NewAnalyzer(checkCfg)

	srv := server.New(cmdCtx.Store, analyzer, logger)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		cmdCtx.Renderer.Printf("Listening on http://%s\n", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
