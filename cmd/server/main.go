package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sciparse/internal/airtable"
	"sciparse/internal/api"
	"sciparse/internal/config"
	"sciparse/internal/fetch"
	"sciparse/internal/parse"
	"sciparse/internal/webhook"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients and services.
	parser := parse.NewService(log)
	fetcher := fetch.NewClient(cfg.FetchTimeout, cfg.MaxContentBytes)
	wh := webhook.New(cfg.WebhookURL, cfg.WebhookSecret, cfg.WebhookMaxRetries, cfg.WebhookRetryDelay, log)

	var airtableURL string
	if cfg.AirtableConfigured() {
		airtableURL = airtable.APIURL(cfg.AirtableBaseID, cfg.AirtableTable)
	}
	at := airtable.NewClient(airtableURL, cfg.AirtableToken)

	srv := api.NewServer(parser, fetcher, wh, at, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		at.Close()
	}()

	log.Info("starting sciparse", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
