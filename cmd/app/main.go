package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tacticbot/tacticbot/internal/battle"
	"github.com/tacticbot/tacticbot/internal/concurrency"
	"github.com/tacticbot/tacticbot/internal/config"
	"github.com/tacticbot/tacticbot/internal/database"
	"github.com/tacticbot/tacticbot/internal/database/postgres"
	"github.com/tacticbot/tacticbot/internal/equipment"
	"github.com/tacticbot/tacticbot/internal/event"
	"github.com/tacticbot/tacticbot/internal/gacha"
	"github.com/tacticbot/tacticbot/internal/handler"
	"github.com/tacticbot/tacticbot/internal/inventory"
	"github.com/tacticbot/tacticbot/internal/logger"
	"github.com/tacticbot/tacticbot/internal/metrics"
	"github.com/tacticbot/tacticbot/internal/scheduler"
	"github.com/tacticbot/tacticbot/internal/server"
	"github.com/tacticbot/tacticbot/internal/worker"
)

const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = 30 * time.Minute

	sweepInterval   = 5 * time.Second
	shutdownTimeout = 10 * time.Second

	workerCount     = 4
	workerQueueSize = 64
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"tacticbot-api",
		cfg.Version,
		cfg.Environment,
		cfg.Environment != "prod",
	))

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	players := postgres.NewPlayerRepository(dbPool)
	templates := postgres.NewTemplateRepository(dbPool)
	battles := postgres.NewBattleRepository(dbPool)

	bus := event.NewMemoryBus()
	lockManager := concurrency.NewLockManager()
	registry := battle.NewRegistry()

	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)

	inventoryService := inventory.NewService(players, templates, lockManager, bus, cfg.ConfirmTimeout)
	gachaService := gacha.NewService(inventoryService, templates, lockManager, bus)
	equipmentService := equipment.NewService(inventoryService, lockManager)
	battleService := battle.NewService(inventoryService, battles, registry, lockManager, bus, cfg.ChallengeTimeout, cfg.PromptTimeout)

	handler.InitValidator()

	// Background sweep expires stale challenges and setup phases so
	// abandoned sessions do not pin their players forever.
	pool := worker.NewPool(workerCount, workerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(sweepInterval, worker.NewSessionSweepJob(battleService))

	trustedProxies := parseTrustedProxies(os.Getenv("TRUSTED_PROXIES"))

	srv := server.NewServer(cfg.Port, cfg.APIKey, trustedProxies, dbPool, inventoryService, gachaService, equipmentService, battleService, battles)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()
	slog.Info("Server started", "port", cfg.Port, "environment", cfg.Environment)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	sched.Stop()
	pool.Stop()
	slog.Info("Shutdown complete")
}

// parseTrustedProxies splits the comma-separated TRUSTED_PROXIES value.
// Empty input means no proxy is trusted and X-Forwarded-For is ignored.
func parseTrustedProxies(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	proxies := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			proxies = append(proxies, trimmed)
		}
	}
	return proxies
}
