package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"parcels/internal/config"
	"time"

	"github.com/sirupsen/logrus"
)

const readHeaderTimeout = 5 * time.Second

// Start runs HTTP server and shuts it down gracefully on ctx cancellation.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, listenErr := net.Listen("tcp", ":"+cfg.Port)
	if listenErr != nil {
		return listenErr
	}
	logrus.Infof("✅ HTTP server listening on %s", cfg.Port)

	return serve(ctx, listener, handler, shutdownTimeout(cfg))
}

func serve(ctx context.Context, listener net.Listener, handler http.Handler, timeout time.Duration) error {
	server := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case serveErr := <-errCh:
		return serveErr
	}
}

func shutdownTimeout(cfg config.HTTPServer) time.Duration {
	if cfg.ShutdownTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(cfg.ShutdownTimeoutSec) * time.Second
}
