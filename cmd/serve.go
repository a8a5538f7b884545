package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/gbce/api"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

const shutdownTimeout = 10 * time.Second

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the exchange over HTTP" }
func (*serveCmd) Usage() string {
	return `gbce serve [-addr <host:port>]

  Serves the exchange HTTP API under /api/v1 until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides http.addr")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	addr := a.cfg.HTTP.Addr
	if c.addr != "" {
		addr = c.addr
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:    addr,
		Handler: api.NewHandler(a.exchange, a.log),
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			a.log.Errorf("http server error: %v", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
	}
	a.log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("server shutdown error: %v", err)
		return subcommands.ExitFailure
	}
	a.log.Info("server stopped")
	return subcommands.ExitSuccess
}
