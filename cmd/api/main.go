package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"segment-aligner/internal/catalog"
	"segment-aligner/internal/config"
	"segment-aligner/internal/http"
	"segment-aligner/internal/library"
	"segment-aligner/internal/service"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API splits timed transcripts into short playable chunks and reports
// which segment and word is active at a playback time.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Segment Aligner API
//   description: |
//     Chunking and time-location API for timed transcripts (SRT, WebVTT, JSON) and markdown lessons.
//     Transcripts can be uploaded or picked up from a watched directory, and a websocket stream
//     follows a player's clock with loop and punch-in support.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewMemory()
	alignService := service.NewAlignService(store, cfg.Chunker())
	slog.Info("Align service initialized", "chunk_min_words", cfg.ChunkMinWords, "chunk_max_words", cfg.ChunkMaxWords)

	// Watch the transcript directory in background
	if cfg.TranscriptDir != "" {
		watcher := library.NewWatcher(cfg.TranscriptDir, alignService)
		go func() {
			slog.Info("Watching transcript directory", "dir", cfg.TranscriptDir)
			if err := watcher.Run(ctx); err != nil {
				slog.Error("Transcript watcher stopped", "error", err)
			}
		}()
	}

	// Create router with dependencies
	deps := &http.Deps{
		AlignService: alignService,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
	server := &nethttp.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: http.NewRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}
}
