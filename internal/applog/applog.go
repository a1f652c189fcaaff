// Package applog builds the activity logger: every entry is echoed to the
// console and appended to a plain-text log file with a bracketed timestamp.
package applog

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultFile is the activity log written next to the working directory.
const DefaultFile = "app.log"

const timeLayout = "[2006-01-02 15:04:05]"

// Options configures New.
type Options struct {
	// File is the append-only log path. Empty disables the file sink.
	File string

	// Console receives the echoed entries. Nil means os.Stderr.
	Console io.Writer

	// Verbose enables debug entries.
	Verbose bool
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// New returns a logger writing to the console and, when opts.File is set,
// appending to that file. The returned close function syncs the logger and
// closes the file.
func New(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	enc := zapcore.NewConsoleEncoder(encoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(console), level),
	}

	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", opts.File, err)
		}
		file = f
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(f), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.DPanicLevel))
	closeFn := func() error {
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}

// LogPanic must be deferred directly. It logs a recovered panic with its
// stack to the logger current returns at that moment, then re-panics.
func LogPanic(current func() *zap.Logger) {
	r := recover()
	if r == nil {
		return
	}
	logger := current()
	logger.Error("unhandled panic",
		zap.String("panic", fmt.Sprint(r)),
		zap.ByteString("stack", debug.Stack()))
	_ = logger.Sync()
	panic(r)
}
