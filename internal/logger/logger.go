package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// Init initializes the global logger. Production config when ENV=production,
// human-friendly development config otherwise.
func Init() {
	env := os.Getenv("ENV")
	var err error
	var l *zap.Logger
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}

	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	Logger = l
}

// L returns the global logger instance, initializing it on first use.
func L() *zap.Logger {
	if Logger == nil {
		Init()
	}
	return Logger
}

// Close flushes the logger buffers.
func Close() {
	if Logger == nil {
		return
	}
	if err := Logger.Sync(); err != nil {
		// Sync on stderr can fail on some platforms; nothing useful to do.
		log.Printf("failed to flush log entries: %v", err)
	}
}
