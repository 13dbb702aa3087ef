package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Options tweak Serve; zero values mean "listen on server.Addr, watch SIGINT/SIGTERM".
type Options struct {
	Listener        net.Listener
	Signals         <-chan os.Signal
	ShutdownTimeout time.Duration
}

// Serve runs server until it fails or a shutdown signal arrives, then drains
// in-flight requests for up to ShutdownTimeout.
func Serve(server *http.Server, logger *zap.Logger, opts Options) error {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 15 * time.Second
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if opts.Listener != nil {
			err = server.Serve(opts.Listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	sigCh := opts.Signals
	if sigCh == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(ch)
		sigCh = ch
	}

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if ok {
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		} else {
			logger.Info("shutdown requested")
		}
		ctx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
