package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"conversa/internal/config"
)

// Options selects encoding, level and an optional log directory
type Options struct {
	Environment string
	// Name prefixes log files so commands sharing LOG_DIR keep separate
	// rotations. Defaults to "gateway".
	Name     string
	LogDir   string
	MaxFiles int
	// Output defaults to stdout
	Output io.Writer
}

// New builds a *slog.Logger backed by zap. Dev gets a debug-level console
// encoder, every other environment info-level JSON. The returned closer
// flushes zap and closes the log file, if any.
func New(opts Options) (*slog.Logger, func() error, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	sinks := []zapcore.WriteSyncer{zapcore.Lock(zapcore.AddSync(out))}

	var logFile *fileSink
	if opts.LogDir != "" {
		name := opts.Name
		if name == "" {
			name = "gateway"
		}
		maxFiles := opts.MaxFiles
		if maxFiles <= 0 {
			maxFiles = config.DefaultLogMaxFiles
		}
		sink, err := openFileSink(opts.LogDir, name, maxFiles)
		if err != nil {
			return nil, nil, fmt.Errorf("setup log file: %w", err)
		}
		logFile = sink
		sinks = append(sinks, sink)
	}

	var encoder zapcore.Encoder
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Environment == "dev" {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level.SetLevel(zapcore.DebugLevel)
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	zl := zap.New(core)
	logger := slog.New(zapslog.NewHandler(core, zapslog.WithCaller(opts.Environment == "dev")))

	closer := func() error {
		_ = zl.Sync()
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	}

	return logger, closer, nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
