package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// serve atiende en ln hasta que ctx se cancela y no retorna hasta que
// Shutdown terminó de drenar las requests en curso (o venció timeout).
func serve(ctx context.Context, server *http.Server, ln net.Listener, logger *zap.Logger, timeout time.Duration) error {
	shutdownDone := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		shutdownDone <- server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownDone; err != nil {
		logger.Warn("server shutdown", zap.Error(err))
		return err
	}
	return nil
}
