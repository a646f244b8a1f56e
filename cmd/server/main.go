package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aura/internal/adapters/executor"
	httpadapter "aura/internal/adapters/http"
	pg "aura/internal/adapters/postgres"
	"aura/internal/adapters/sqlite"
	"aura/internal/adapters/ws"
	"aura/internal/config"
	"aura/internal/ports"
	"aura/internal/services/correlation"
	"aura/internal/services/investigations"
	"aura/internal/services/tools"
	"aura/internal/workers/correlator"
	"aura/internal/workers/retention"
)

func main() {
	cfg, cfgErr := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()
	if cfgErr != nil {
		log.Fatalw("invalid configuration", "error", cfgErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalw("open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()

	registry := tools.NewDefaultRegistry()
	var exec ports.ToolExecutor = executor.Router{Fallback: executor.NewSimulated(registry, cfg.SimulatedScale)}
	if cfg.ExecutorMode == config.ExecutorScript {
		exec = executor.Router{Script: executor.NewScript(cfg.ScriptsDir, registry)}
	}

	engine := correlation.NewEngine(store, cfg.Weights, cfg.Thresholds, log.Named("correlation"))
	hub := investigations.NewHub(log.Named("hub"))
	active := investigations.NewStore()
	orch := investigations.New(registry, tools.NewLimiters(registry.List()), exec, active, hub,
		correlation.NewIngestor(engine, store, log.Named("ingest")),
		investigations.Config{Workers: cfg.ToolWorkers, Grace: cfg.ToolGrace}, log.Named("orchestrator"))

	processor := correlator.EngineProcessor{Engine: engine, Log: log.Named("correlator")}
	events := ws.NewHandler(orch, hub, registry, cfg.WSCommandsPerMinute, log.Named("ws"))
	srv := httpadapter.New(orch, registry, engine, store, processor, store, events, log.Named("http"))

	var wg sync.WaitGroup
	if cfg.CorrelationWorkers > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			correlator.Run(ctx, store, processor, cfg.CorrelationWorkers, cfg.CorrelationPoll, log.Named("correlator"))
		}()
		log.Infow("correlation workers started", "workers", cfg.CorrelationWorkers)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		retention.Run(ctx, active, cfg.RetentionMaxAge, cfg.RetentionInterval, log.Named("retention"))
	}()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()
	log.Infow("listening", "addr", cfg.ListenAddr, "store", cfg.StoreDriver, "executor", cfg.ExecutorMode, "tools", len(registry.List()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Infow("shutting down", "signal", sig.String())
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server error", "error", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}
	cancel()
	orch.Close()
	wg.Wait()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func openStore(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (ports.CorrelationStore, error) {
	if cfg.StoreDriver == config.DriverPostgres {
		db, err := pg.Connect(ctx, cfg.DatabaseURL, log.Named("postgres"))
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}
	db, err := sqlite.Open(ctx, cfg.SQLitePath, log.Named("sqlite"))
	if err != nil {
		return nil, err
	}
	return db, nil
}
