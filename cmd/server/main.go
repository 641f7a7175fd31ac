package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/dropin/internal/api"
	"github.com/mmynk/dropin/internal/config"
	"github.com/mmynk/dropin/internal/metrics"
	"github.com/mmynk/dropin/internal/middleware"
	"github.com/mmynk/dropin/internal/ocr"
	"github.com/mmynk/dropin/internal/persist"
	"github.com/mmynk/dropin/internal/service"
	"github.com/mmynk/dropin/internal/storage"
	"github.com/mmynk/dropin/internal/storage/postgres"
	"github.com/mmynk/dropin/internal/storage/redis"
	"github.com/mmynk/dropin/internal/storage/sqlite"
	"github.com/mmynk/dropin/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("DROPIN_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level)

	if err := run(cfg); err != nil {
		slog.Error("Server terminated with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	local, err := openLocal(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer local.Close()

	var remote storage.RemoteStore
	if cfg.Storage.RemoteDSN != "" {
		pg, err := postgres.New(cfg.Storage.RemoteDSN)
		if err != nil {
			return err
		}
		defer pg.Close()
		remote = pg
		slog.Info("Remote sync enabled")
	}

	m := metrics.New()

	writer := persist.NewWriter(persist.Config{Local: local, Remote: remote, Metrics: m})
	// Flush the last snapshot before the stores close.
	defer writer.Close()

	participants, err := writer.Load(ctx)
	if err != nil {
		return err
	}
	slog.Info("Roster loaded", "count", len(participants))

	svcCfg := service.Config{
		Participants: participants,
		NumCourts:    cfg.Session.Courts,
		Persister:    writer,
		Metrics:      m,
	}
	if cfg.OCREnabled() {
		svcCfg.OCR = ocr.NewClient(cfg.OCR.Endpoint, cfg.OCR.APIKey, cfg.OCR.Timeout)
	} else {
		slog.Warn("DROPIN_OCR_API_KEY not set, image scanning disabled")
	}
	svc, err := service.NewSessionService(svcCfg)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(api.NewSessionServiceHandler(svc,
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m)),
	))
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		slog.Info("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openLocal(ctx context.Context, cfg config.StorageConfig) (storage.SnapshotStore, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		store, err := redis.New(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "redis", "addr", cfg.Redis.Addr)
		return store, nil
	default:
		store, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.Path)
		return store, nil
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
