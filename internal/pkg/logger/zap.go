// Package logger adapts zap to the ports.Logger abstraction.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pieronoviello/natsh/internal/ports"
)

// ZapLogger routes structured logs to a file so log output never interleaves
// with the interactive prompt.
type ZapLogger struct {
	log *zap.Logger
}

// NewFile creates a file-backed logger at path. Debug entries are dropped
// unless verbose is set. Failure to open the file degrades to a no-op
// logger rather than breaking the session.
func NewFile(path string, verbose bool) *ZapLogger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ZapLogger{log: zap.NewNop()}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &ZapLogger{log: zap.NewNop()}
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(file),
		level,
	)
	return &ZapLogger{log: zap.New(core)}
}

// NewNop returns a logger that discards everything; handy in tests.
func NewNop() *ZapLogger {
	return &ZapLogger{log: zap.NewNop()}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	zapFields := toZapFields(fields)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	l.log.Error(msg, zapFields...)
}

// Sync flushes buffered entries at clean shutdown.
func (l *ZapLogger) Sync() {
	_ = l.log.Sync()
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zapFields
}

var _ ports.Logger = (*ZapLogger)(nil)
