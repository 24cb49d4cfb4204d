package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logFileName = "planefade.log"
	maxLogSize  = 10 * 1024 * 1024
)

// logNow stamps rotated file names
var logNow = time.Now

// setupLogging returns a discarding logger unless debug is set
// With debug, logs go to dir/planefade.log; a file over maxLogSize is rotated aside first
// A failed rotation is reported in the new log
// The terminal belongs to the animation, so nothing is ever logged to stdout or stderr
func setupLogging(dir string, debug bool) (*slog.Logger, *os.File) {
	discard := slog.New(slog.DiscardHandler)
	if !debug {
		return discard, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return discard, nil
	}

	path := filepath.Join(dir, logFileName)
	var rotateErr error
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("planefade-%s.log", logNow().Format("20060102-150405")))
		rotateErr = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return discard, nil
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("logging started", "pid", os.Getpid())
	if rotateErr != nil {
		logger.Warn("log rotation failed, appending to oversized log", "error", rotateErr)
	}
	return logger, f
}
