package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	rosterhttp "github.com/aretw0/roster/pkg/adapters/http"
	"github.com/aretw0/roster/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// shutdownTimeout bounds how long in-flight requests may take on shutdown.
const shutdownTimeout = 5 * time.Second

// NewHTTPHandler wires the HTTP API with metrics on a private registry.
func NewHTTPHandler(env *Env) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	sessions := env.Sessions(metrics.Hooks())
	return rosterhttp.NewHandler(sessions,
		rosterhttp.WithLogger(env.Logger),
		rosterhttp.WithMetrics(metrics, reg),
	)
}

// Serve runs the HTTP API on addr until ctx is done.
func Serve(ctx context.Context, env *Env, addr string) error {
	if addr == "" {
		addr = env.Config.HTTP.Addr
	}
	handler, err := NewHTTPHandler(env)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		env.Logger.Info("HTTP server listening", "address", addr, "backend", env.Config.Store.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		env.Logger.Info("Shutdown signal received, shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
