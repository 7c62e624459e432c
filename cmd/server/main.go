// Command server runs the remediation approval gateway. main wires
// high-level dependencies, exposes the HTTP router, and keeps the server
// lifecycle small; business logic lives in the internal services packages.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"remedia/internal/audit"
	auditfile "remedia/internal/audit/store/file"
	auditkafka "remedia/internal/audit/store/kafka"
	auditmemory "remedia/internal/audit/store/memory"
	auditpg "remedia/internal/audit/store/postgres"
	auditredis "remedia/internal/audit/store/redisstream"
	"remedia/internal/batch"
	"remedia/internal/classifier"
	"remedia/internal/gate"
	"remedia/internal/gate/handler"
	"remedia/internal/gate/metrics"
	"remedia/internal/generation"
	httpapi "remedia/internal/http"
	"remedia/internal/platform/config"
	"remedia/internal/platform/httpserver"
	"remedia/internal/platform/logger"
	platformredis "remedia/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	cls, err := classifier.NewFromFile(cfg.ClassifierRulesPath)
	if err != nil {
		return fmt.Errorf("load classifier rules: %w", err)
	}

	store, closeStore, err := buildAuditStore(cfg.Audit)
	if err != nil {
		return fmt.Errorf("initialize audit store: %w", err)
	}
	defer closeStore()

	generator := generation.NewOllamaClient(generation.OllamaConfig{
		Endpoint:  cfg.Generation.Endpoint,
		Model:     cfg.Generation.Model,
		MaxTokens: cfg.Generation.MaxTokens,
		Timeout:   cfg.Generation.Timeout,
	}, nil)

	m := metrics.New()
	auditor := audit.NewPublisher(store)
	svc := gate.NewService(generator, cls, auditor, log, m)
	orchestrator := batch.NewOrchestrator(svc, log, m, cfg.BatchConcurrency)

	h := handler.New(svc, orchestrator, log)
	router := httpapi.NewRouter(h)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting remedia gateway",
		"addr", cfg.Addr,
		"audit_backend", cfg.Audit.Backend,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildAuditStore selects the audit backend. The returned cleanup is safe to
// call once, after the server stops accepting decisions.
func buildAuditStore(cfg config.AuditConfig) (audit.Store, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case "file":
		store, err := auditfile.Open(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err := auditpg.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return auditpg.New(db), func() { db.Close() }, nil

	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return auditredis.New(client.Client, cfg.RedisStream), func() { client.Close() }, nil

	case "kafka":
		client, err := auditkafka.Dial(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, nil, err
		}
		return auditkafka.New(client), func() { client.Close() }, nil

	case "memory":
		return auditmemory.NewStore(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown audit backend %q", cfg.Backend)
	}
}
