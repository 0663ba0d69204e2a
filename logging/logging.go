// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logging sets up the default slog logger for the kiosk.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level string
	// When set, logs are also written to this file with rotation.
	File       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}

// Init builds a JSON logger, installs it as the slog default and returns
// it. The returned closer flushes the rotating file, if any.
func Init(cfg Config, attrs ...slog.Attr) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: LevelFromString(cfg.Level)}

	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		target := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 10), // megabytes
			MaxAge:     orDefault(cfg.MaxAgeDays, 30),
			MaxBackups: orDefault(cfg.MaxBackups, 5),
			Compress:   cfg.Compress,
		}
		w = io.MultiWriter(os.Stdout, target)
		closer = target
	}

	logger := slog.New(slog.NewJSONHandler(w, opts))
	for _, a := range attrs {
		logger = logger.With(a)
	}
	slog.SetDefault(logger)
	return logger, closer
}

// LevelFromString maps debug/info/warn/error, defaulting to info
func LevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
