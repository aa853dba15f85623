package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/kailas-cloud/patchscout/internal/transport/chi"
	healthuc "github.com/kailas-cloud/patchscout/internal/usecase/health"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search and predict HTTP API",
		Long: `Serves GET /v1/search?q=&mode=&label=&top_k=, POST /v1/predict, GET /health
and GET /metrics until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.buildEngine(cmd.Context())
			if err != nil {
				return err
			}
			if port != 0 {
				a.cfg.HTTP.Port = port
			}
			return a.serve(cmd.Context(), chiTransport.NewServer(e, e, a.healthService(), a.logger))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default: http.port)")
	return cmd
}

// healthService avoids handing typed nil pointers to the optional checks.
func (a *app) healthService() *healthuc.Service {
	var cache healthuc.CachePinger
	if a.store != nil {
		cache = a.store
	}
	var emb healthuc.EmbeddingChecker
	if a.checker != nil {
		emb = a.checker
	}
	return healthuc.New(a.engine.Corpus(), cache, emb)
}

func (a *app) serve(ctx context.Context, server *chiTransport.Server) error {
	hc := a.cfg.HTTP
	addr := fmt.Sprintf(":%d", hc.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, a.cfg.Auth.APIKeys, a.logger),
		ReadTimeout:  time.Duration(hc.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(hc.WriteTimeoutSec) * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	a.logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(hc.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("Server stopped gracefully")
	return nil
}
