package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"segment-aligner/internal/aligner"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort         string
	LogLevel        slog.Level
	LogFormat       string // "text" or "json"
	TranscriptDir   string // empty disables the library watcher
	ChunkMinWords   int
	ChunkMaxWords   int
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Chunker returns the chunker configured by CHUNK_MIN_WORDS and CHUNK_MAX_WORDS.
func (c *Config) Chunker() aligner.Chunker {
	return aligner.Chunker{MinWords: c.ChunkMinWords, MaxWords: c.ChunkMaxWords}
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:       getEnv("API_PORT", "9000"),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
		TranscriptDir: getEnv("TRANSCRIPT_DIR", ""),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.ChunkMinWords, err = getEnvInt("CHUNK_MIN_WORDS", aligner.MinChunkWords); err != nil {
		return nil, err
	}
	if cfg.ChunkMaxWords, err = getEnvInt("CHUNK_MAX_WORDS", aligner.MaxChunkWords); err != nil {
		return nil, err
	}
	if err := cfg.Chunker().Validate(); err != nil {
		return nil, fmt.Errorf("invalid chunk bounds: %w", err)
	}

	maxBody, err := getEnvInt("MAX_BODY_BYTES", 5<<20)
	if err != nil {
		return nil, err
	}
	if maxBody <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be greater than 0")
	}
	cfg.MaxBodyBytes = int64(maxBody)

	cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be a duration such as 10s: %w", err)
	}

	// Create the transcript directory if it doesn't exist so it can be watched
	if cfg.TranscriptDir != "" {
		if err := os.MkdirAll(cfg.TranscriptDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable, returning defaultValue when unset.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
