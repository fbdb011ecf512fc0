package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tasklist/tasklist-go/internal/config"
	"github.com/tasklist/tasklist-go/internal/crypto"
	"github.com/tasklist/tasklist-go/internal/handler"
	"github.com/tasklist/tasklist-go/internal/logger"
	"github.com/tasklist/tasklist-go/internal/metrics"
	"github.com/tasklist/tasklist-go/internal/repository"
	"github.com/tasklist/tasklist-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users, todos, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	deps := handler.RouterDeps{
		Auth:    service.NewAuthService(users, crypto.NewPasswordHasher(crypto.DefaultHashParams()), cfg.JWTSecret, cfg.JWTExpiry),
		Todos:   service.NewTodoService(todos),
		Logger:  log,
		Metrics: metrics.Nop{},
	}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Metrics = metrics.NewCollector(reg)
		deps.Gatherer = reg
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.NewRouter(deps),
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "memory_store", cfg.UsesMemoryStore())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// openStores returns the credential and todo stores: MySQL when a DSN is
// configured, process memory otherwise.
func openStores(ctx context.Context, cfg config.Config) (service.UserStore, service.TodoStore, func(), error) {
	if cfg.UsesMemoryStore() {
		slog.Warn("DATABASE_DSN not set, data will not survive a restart")
		mem := repository.NewMemoryStore()
		return mem.Users(), mem.Todos(), func() {}, nil
	}

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			slog.Error("closing database", "error", err)
		}
	}

	return repository.NewMySQLUserRepository(db), repository.NewMySQLTodoRepository(db), closeDB, nil
}
