// Package logging adapts the daemon's 0-7 verbosity scale (mirroring
// syslog's LOG_EMERG..LOG_DEBUG) onto a structured zap logger, with an
// optional syslog-duplicating core for the -L flag.
package logging

import (
	"log/syslog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels, matching syslog's priority scale.
const (
	Emerg = iota
	Alert
	Crit
	Err
	Warning
	Notice
	Info
	Debug
)

// Logger wraps a zap.SugaredLogger and the verbosity threshold it was built
// with, so callers can gate expensive dump-style logging cheaply.
type Logger struct {
	sugar     *zap.SugaredLogger
	level     zap.AtomicLevel
	verbosity int
}

func zapLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= Err:
		return zapcore.ErrorLevel
	case verbosity <= Warning:
		return zapcore.WarnLevel
	case verbosity <= Info:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New builds a Logger at the given verbosity (0-7, see the level
// constants). When useSyslog is true, log entries are additionally written
// to the local syslog daemon under the "daemon" facility.
func New(verbosity int, useSyslog bool, progname string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	level := zap.NewAtomicLevelAt(zapLevel(verbosity))
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	if useSyslog {
		writer, err := syslog.New(syslog.LOG_DAEMON|syslog.LOG_NOTICE, progname)
		if err != nil {
			zl.Sync() //nolint:errcheck
			return nil, err
		}
		encoder := zapcore.NewConsoleEncoder(cfg.EncoderConfig)
		syslogCore := zapcore.NewCore(encoder, zapcore.AddSync(writer), level)
		zl = zl.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, syslogCore)
		}))
	}

	return &Logger{sugar: zl.Sugar(), level: level, verbosity: verbosity}, nil
}

// SetVerbosity adjusts the minimum level dynamically, mirroring the
// ++LOG <0..7> command.
func (l *Logger) SetVerbosity(verbosity int) {
	l.verbosity = verbosity
	l.level.SetLevel(zapLevel(verbosity))
}

// Enabled reports whether a message at the given verbosity would be logged,
// letting callers skip building expensive dump output.
func (l *Logger) Enabled(verbosity int) bool {
	return verbosity <= l.verbosity
}

func (l *Logger) Debugf(format string, args ...interface{})  { l.sugar.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})   { l.sugar.Infof(format, args...) }
func (l *Logger) Noticef(format string, args ...interface{}) { l.sugar.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})   { l.sugar.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{})  { l.sugar.Errorf(format, args...) }

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
