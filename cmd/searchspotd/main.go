// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

// Command searchspotd is the HTTP daemon: it loads configuration, wires
// the engine client and resource stores, and serves the talent/score
// surface described in §6.1 until it receives a termination signal.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/icalialabs/searchspot/internal/auth"
	"github.com/icalialabs/searchspot/internal/config"
	"github.com/icalialabs/searchspot/internal/engine"
	"github.com/icalialabs/searchspot/internal/httpapi"
	"github.com/icalialabs/searchspot/internal/monitor"
	"github.com/icalialabs/searchspot/internal/resources"
	"github.com/icalialabs/searchspot/internal/telemetry"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a TOML configuration file; falls back to environment variables when empty")
	pflag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("searchspotd: configuration error: %v", err)
	}

	monitorProvider, err := monitor.New(monitor.Config{
		Provider:    cfg.Monitor.Provider,
		Enabled:     cfg.Monitor.Enabled,
		AccessToken: cfg.Monitor.AccessToken,
		Environment: cfg.Monitor.Environment,
	})
	if err != nil {
		log.Fatalf("searchspotd: configuration error: %v", err)
	}

	logger := telemetry.New("searchspot", monitorProvider)

	engineClient, err := engine.New([]string{cfg.ES.URL})
	if err != nil {
		log.Fatalf("searchspotd: engine connection failure: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := engineClient.Ping(ctx); err != nil {
		log.Fatalf("searchspotd: engine connection failure: %v", err)
	}

	talents := resources.NewTalentStore(engineClient)

	verifier := &auth.Verifier{
		Enabled:       cfg.Auth.Enabled,
		ReadSecret:    cfg.Auth.Read,
		WriteSecret:   cfg.Auth.Write,
		ReadLifetime:  cfg.Tokens.Lifetime.Read(),
		WriteLifetime: cfg.Tokens.Lifetime.Write(),
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Talents: talents,
		Scores:  talents.Scores,
		Index:   cfg.ES.Index,
		Auth:    verifier,
		Monitor: monitorProvider,
		Logger:  logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "searchspotd listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("searchspotd: listener bind failure: %v", err)
	case <-sigCh:
		logger.Info(context.Background(), "searchspotd shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("searchspotd: shutdown error: %v", err)
		}
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.FromFile(path)
	}
	return config.FromEnv()
}
