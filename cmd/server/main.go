package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/folioparse/internal/api"
	"github.com/dgallion1/folioparse/internal/config"
	"github.com/dgallion1/folioparse/internal/pipeline"
	"github.com/dgallion1/folioparse/internal/stats"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.LogParseDebug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	latency := stats.NewLatency(time.Hour)

	// Initialize pipeline. Workers outlive the signal so they can drain.
	orch := pipeline.NewOrchestrator(cfg, latency, log)
	orch.Start(context.Background())

	// Initialize HTTP server.
	srv := api.NewServer(orch, latency, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		log.Error("listen failed", "addr", httpServer.Addr, "error", err)
		os.Exit(1)
	}

	log.Info("starting folioparse",
		"port", cfg.Port,
		"workers", cfg.WorkerCount,
		"pdftotext_fallback", cfg.PDFFallbackPdftotext,
	)
	if err := serve(ctx, httpServer, ln, orch, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

// serve runs the HTTP server until ctx is done, then shuts down HTTP first so
// no job can be submitted into a closed queue, and returns once the workers
// have exited.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, orch *pipeline.Orchestrator, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		orch.Stop()
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}

	orch.Stop()
	return nil
}
