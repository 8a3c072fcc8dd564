// landlord-devserver runs an in-memory landlord provisioning API for local
// development. Created tenants report a pending database that becomes ready
// after -ready-after, so the client-side poller can be exercised end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edvin/estately/internal/config"
	"github.com/edvin/estately/internal/devserver"
	"github.com/edvin/estately/internal/logging"
)

func main() {
	addr := flag.String("addr", "", "Listen address (default from HTTP_LISTEN_ADDR, else :8080)")
	readyAfter := flag.Duration("ready-after", 10*time.Second, "How long a new tenant's database stays pending (0 = ready immediately)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.HTTPListenAddr = *addr
	}

	logger := logging.NewLogger("landlord-devserver", cfg.LogLevel)

	srv := devserver.NewServer(logger, *readyAfter)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.HTTPListenAddr).
			Dur("ready_after", *readyAfter).
			Msg("starting landlord dev server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}
