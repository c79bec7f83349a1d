// Package logging builds the JSON diagnostic log that users send to the maintainer when a run fails.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conn-castle/toolstrap/internal/messages"
)

var (
	newRunID   = func() string { return uuid.NewString() }
	osMkdirAll = os.MkdirAll
)

// Options configures the diagnostic log.
type Options struct {
	// File is the log destination. Empty disables logging.
	File    string
	Verbose bool
	Version string
}

// Diagnostic is an open diagnostic log.
type Diagnostic struct {
	Logger *zap.Logger
	RunID  string
	File   string
}

// Open builds the logger described by opts. Without a file it returns a no-op logger that still
// carries a run id.
func Open(opts Options) (*Diagnostic, error) {
	runID := newRunID()
	if opts.File == "" {
		return &Diagnostic{Logger: zap.NewNop(), RunID: runID}, nil
	}
	if dir := filepath.Dir(opts.File); dir != "" {
		if err := osMkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf(messages.LoggingOpenFmt, opts.File, err)
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{opts.File}
	config.ErrorOutputPaths = []string{opts.File}
	config.Sampling = nil
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build(zap.Fields(
		zap.String("run_id", runID),
		zap.String("version", opts.Version),
		zap.String("os", runtime.GOOS),
		zap.String("arch", runtime.GOARCH),
	))
	if err != nil {
		return nil, fmt.Errorf(messages.LoggingOpenFmt, opts.File, err)
	}
	return &Diagnostic{Logger: logger, RunID: runID, File: opts.File}, nil
}

// Close flushes the log.
func (d *Diagnostic) Close() error {
	if d == nil || d.Logger == nil {
		return nil
	}
	return d.Logger.Sync()
}
