package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okulov/sitemap-gen/app/api"
	"github.com/okulov/sitemap-gen/app/cfg"
	"github.com/okulov/sitemap-gen/app/config"
	"github.com/okulov/sitemap-gen/app/sitemap"
	"github.com/okulov/sitemap-gen/app/sources"
	"github.com/okulov/sitemap-gen/app/writer"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting sitemap generation", "version", appConfig.Version, "config", appConfig.ConfigFile)

	siteConfig, feeds, err := config.NewLoader(appConfig.ConfigFile).Load()
	if err != nil {
		slog.Error("Failed to load site description", "error", err)
		os.Exit(1)
	}

	// Command-line overrides win over the site description.
	if appConfig.BaseUrl != "" {
		siteConfig.BaseURL = appConfig.BaseUrl
	}
	if appConfig.Pretty {
		siteConfig.Pretty = true
	}
	if appConfig.TrailingSlash {
		siteConfig.TrailingSlash = true
	}

	ctx := context.Background()

	for _, feedURL := range feeds {
		entries, err := sources.NewFeedSource(feedURL, nil).Entries(ctx)
		if err != nil {
			slog.Error("Failed to load feed entries", "feed", feedURL, "error", err)
			os.Exit(1)
		}
		siteConfig.URLs = append(siteConfig.URLs, entries...)
	}

	documents, err := sitemap.Generate(ctx, *siteConfig)
	if err != nil {
		slog.Error("Sitemap generation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Sitemap generated", "documents", len(documents))

	if appConfig.OutputDir != "" {
		if err := writer.NewWriter(appConfig.OutputDir).Run(documents); err != nil {
			slog.Error("Failed to write documents", "error", err)
			os.Exit(1)
		}
	}

	if !appConfig.Serve {
		return
	}

	handler := api.NewHandler(documents)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Serving generated documents", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
