// Copyright (C) 2025 MercadoGenius (hola@mercadogenius.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command mercado starts the local marketplace API server.
//
// The server is single-user and listens on localhost for the browser UI.
// All data lives in an embedded BadgerDB directory; there is no remote
// backend and no account system beyond the active-seller marker.
//
// Usage:
//
//	go run ./cmd/mercado
//	go run ./cmd/mercado -port 9090 -debug
//
// With the AI assistant (listing copy + buyer chat):
//
//	OPENAI_API_KEY=... go run ./cmd/mercado
//
// Example requests:
//
//	curl http://localhost:8950/v1/market/health
//	curl "http://localhost:8950/v1/market/stores?city=Managua&q=zapatos"
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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mercadogenius/mercado/cmd/mercado/config"
	"github.com/mercadogenius/mercado/pkg/logging"
	"github.com/mercadogenius/mercado/services/assistant"
	"github.com/mercadogenius/mercado/services/market"
	"github.com/mercadogenius/mercado/services/market/records"
	storagebadger "github.com/mercadogenius/mercado/services/market/storage/badger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to the config file (default ~/.mercado/mercado.yaml)")
	port := flag.Int("port", 0, "Port to listen on (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	level := cfg.Logging.Level
	if *debug {
		level = "debug"
	}
	logger := logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.LogDir,
		Service: "mercado",
	})
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the embedded database and the record store over it.
	dbCfg := storagebadger.DefaultConfig()
	dbCfg.Path = cfg.Storage.DataDir
	dbCfg.Logger = logger.Logger
	db, err := storagebadger.Open(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := records.New(db, logger.Logger)
	if err != nil {
		return err
	}

	svc := market.NewService(store, logger.Logger)
	setupAssistant(svc, cfg, logger.Logger)

	router := gin.New()
	router.Use(gin.Recovery())
	if *debug {
		router.Use(gin.Logger())
	}
	v1 := router.Group("/v1")
	market.RegisterRoutes(v1, market.NewHandlers(svc))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	gc, err := storagebadger.NewGCRunner(db, dbCfg.GCInterval, dbCfg.GCDiscardRatio, logger.Logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting mercado server",
			slog.String("address", addr),
			slog.String("data_dir", cfg.Storage.DataDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		gc.Start()
		<-ctx.Done()
		gc.Stop()

		slog.Info("Shutting down mercado server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// setupAssistant wires the AI bridge when configured and credentialed.
// Without it the server still runs; the AI endpoints report unavailable.
func setupAssistant(svc *market.Service, cfg config.Config, logger *slog.Logger) {
	if !cfg.Assistant.Enabled {
		slog.Info("Assistant disabled by config")
		return
	}
	client, err := assistant.NewOpenAIClient()
	if err != nil {
		slog.Warn("Assistant not available", slog.String("error", err.Error()))
		slog.Info("Set OPENAI_API_KEY to enable listing copy generation and buyer chat")
		return
	}
	svc.WithAssistant(assistant.NewBridge(client, logger))
	slog.Info("Assistant enabled")
}
