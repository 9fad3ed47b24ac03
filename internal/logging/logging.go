// Package logging provides a logrus-shaped structured logger backed by
// zap, adapted from the teacher's internal/logging/zaplogrus facade. The
// teacher additionally carried a StandardLogger wrapper over this facade
// (internal/logging/logger_test.go references it), but its source file
// was never part of the retrieved pack — only the test and this facade
// were. Rather than invent a StandardLogger from the test's method names
// alone, this package keeps the facade as the logger itself and adds the
// handful of domain fields (symbol, market, interval) an analysis engine
// actually logs with, in place of the teacher's exchange/arbitrage ones.
package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

type Fields map[string]interface{}

type Logger struct {
	mu          sync.RWMutex
	base        *zap.Logger
	atomicLevel zap.AtomicLevel
	level       Level
}

type Entry struct {
	logger *Logger
	fields []zap.Field
}

var std = New()

// New builds a Logger writing JSON lines to stdout at info level.
func New() *Logger {
	atomicLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		atomicLevel,
	)
	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{base: base, atomicLevel: atomicLevel, level: InfoLevel}
}

func Default() *Logger { return std }

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.atomicLevel.SetLevel(toZapLevel(level))
}

func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) WithField(key string, value interface{}) *Entry {
	return &Entry{logger: l, fields: []zap.Field{zap.Any(key, value)}}
}

func (l *Logger) WithFields(fields Fields) *Entry {
	return &Entry{logger: l, fields: toZapFields(fields)}
}

func (l *Logger) WithError(err error) *Entry {
	return &Entry{logger: l, fields: []zap.Field{zap.Error(err)}}
}

// WithSymbol, WithMarket, and WithInterval tag a log line with the
// candle series it concerns — the fields every engine/marketdata/cache
// log line carries instead of the teacher's exchange/pair fields.
func (l *Logger) WithSymbol(symbol string) *Entry     { return l.WithField("symbol", symbol) }
func (l *Logger) WithMarket(market string) *Entry     { return l.WithField("market", market) }
func (l *Logger) WithInterval(interval string) *Entry { return l.WithField("interval", interval) }

func (l *Logger) Debug(args ...interface{}) { l.base.Debug(fmt.Sprint(args...)) }
func (l *Logger) Info(args ...interface{})  { l.base.Info(fmt.Sprint(args...)) }
func (l *Logger) Warn(args ...interface{})  { l.base.Warn(fmt.Sprint(args...)) }
func (l *Logger) Error(args ...interface{}) { l.base.Error(fmt.Sprint(args...)) }
func (l *Logger) Fatal(args ...interface{}) { l.base.Fatal(fmt.Sprint(args...)) }
func (l *Logger) Panic(args ...interface{}) { l.base.Panic(fmt.Sprint(args...)) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.base.Debug(fmt.Sprintf(format, args...))
}
func (l *Logger) Infof(format string, args ...interface{}) { l.base.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.base.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.base.Error(fmt.Sprintf(format, args...))
}
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.base.Fatal(fmt.Sprintf(format, args...))
}

func (l *Logger) Sync() error { return l.base.Sync() }

func (e *Entry) WithField(key string, value interface{}) *Entry {
	return &Entry{logger: e.logger, fields: append(copyFields(e.fields), zap.Any(key, value))}
}

func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{logger: e.logger, fields: append(copyFields(e.fields), toZapFields(fields)...)}
}

func (e *Entry) WithError(err error) *Entry {
	return &Entry{logger: e.logger, fields: append(copyFields(e.fields), zap.Error(err))}
}

func (e *Entry) WithSymbol(symbol string) *Entry     { return e.WithField("symbol", symbol) }
func (e *Entry) WithMarket(market string) *Entry     { return e.WithField("market", market) }
func (e *Entry) WithInterval(interval string) *Entry { return e.WithField("interval", interval) }

func (e *Entry) Debug(args ...interface{}) { e.logger.base.With(e.fields...).Debug(fmt.Sprint(args...)) }
func (e *Entry) Info(args ...interface{})  { e.logger.base.With(e.fields...).Info(fmt.Sprint(args...)) }
func (e *Entry) Warn(args ...interface{})  { e.logger.base.With(e.fields...).Warn(fmt.Sprint(args...)) }
func (e *Entry) Error(args ...interface{}) { e.logger.base.With(e.fields...).Error(fmt.Sprint(args...)) }
func (e *Entry) Fatal(args ...interface{}) { e.logger.base.With(e.fields...).Fatal(fmt.Sprint(args...)) }

func (e *Entry) Debugf(format string, args ...interface{}) {
	e.logger.base.With(e.fields...).Debug(fmt.Sprintf(format, args...))
}
func (e *Entry) Infof(format string, args ...interface{}) {
	e.logger.base.With(e.fields...).Info(fmt.Sprintf(format, args...))
}
func (e *Entry) Warnf(format string, args ...interface{}) {
	e.logger.base.With(e.fields...).Warn(fmt.Sprintf(format, args...))
}
func (e *Entry) Errorf(format string, args ...interface{}) {
	e.logger.base.With(e.fields...).Error(fmt.Sprintf(format, args...))
}

func Debug(args ...interface{}) { std.base.WithOptions(zap.AddCallerSkip(1)).Debug(fmt.Sprint(args...)) }
func Info(args ...interface{})  { std.base.WithOptions(zap.AddCallerSkip(1)).Info(fmt.Sprint(args...)) }
func Warn(args ...interface{})  { std.base.WithOptions(zap.AddCallerSkip(1)).Warn(fmt.Sprint(args...)) }
func Error(args ...interface{}) {
	std.base.WithOptions(zap.AddCallerSkip(1)).Error(fmt.Sprint(args...))
}
func Fatal(args ...interface{}) {
	std.base.WithOptions(zap.AddCallerSkip(1)).Fatal(fmt.Sprint(args...))
}

func WithField(key string, value interface{}) *Entry { return std.WithField(key, value) }
func WithFields(fields Fields) *Entry                { return std.WithFields(fields) }
func WithError(err error) *Entry                     { return std.WithError(err) }
func WithSymbol(symbol string) *Entry                { return std.WithSymbol(symbol) }

func toZapFields(fields Fields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}

func copyFields(in []zap.Field) []zap.Field {
	out := make([]zap.Field, len(in))
	copy(out, in)
	return out
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case PanicLevel:
		return zapcore.PanicLevel
	case FatalLevel:
		return zapcore.FatalLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case DebugLevel, TraceLevel:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
