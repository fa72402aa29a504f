// Package logging points the standard logger at stderr and, optionally, a
// size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/promptforge/promptforge/internal/config"
)

const (
	maxBackups = 3
	maxAgeDays = 28
)

// Setup configures the standard logger from cfg and returns a function that
// closes the log file, if any.
func Setup(cfg *config.Config) func() error {
	w, closeFn := Writer(os.Stderr, cfg.Log.File, cfg.Log.MaxSizeMB)
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags)
	return closeFn
}

// Writer returns console teed into a rotating file at path. With an empty
// path it returns console unchanged.
func Writer(console io.Writer, path string, maxSizeMB int) (io.Writer, func() error) {
	if path == "" {
		return console, func() error { return nil }
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(console, file), file.Close
}
