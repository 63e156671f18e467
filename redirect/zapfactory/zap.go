// Package zapfactory implements redirect.Factory on top of a zap logger.
package zapfactory

import (
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rainbow-me/logredirect/common/logger"
	"github.com/rainbow-me/logredirect/redirect"
)

const (
	SeverityKey  = "severity"
	EventIDKey   = "event_id"
	EventNameKey = "event_name"

	// RecordKeyPrefix is prepended to record keys that would collide with the
	// fields this package writes itself.
	RecordKeyPrefix = "record."
)

// reservedKeys are the field names written by Log outside the record.
// zap.Error adds errorVerbose for errors carrying detail.
var reservedKeys = map[string]struct{}{
	SeverityKey:    {},
	EventIDKey:     {},
	EventNameKey:   {},
	"error":        {},
	"errorVerbose": {},
}

// FieldKey returns the zap field name used for a record key.
func FieldKey(key string) string {
	if _, ok := reservedKeys[key]; ok {
		return RecordKeyPrefix + key
	}
	return key
}

// Factory creates zap loggers named after the source logger.
type Factory struct {
	base *logger.Logger
}

// New returns a Factory deriving its loggers from base. A nil base falls back
// to logger.Instance.
func New(base *logger.Logger) *Factory {
	if base == nil {
		base = logger.Instance()
	}
	return &Factory{base: base}
}

func (f *Factory) CreateLogger(name string) redirect.Logger {
	return &Logger{zap: f.base.Named(name)}
}

// Logger writes redirected records to zap.
type Logger struct {
	zap *logger.Logger
}

func (l *Logger) Log(severity redirect.Severity, id redirect.EventID, record redirect.Record, err error, format redirect.Formatter) {
	level, ok := Level(severity)
	if !ok {
		return
	}

	ce := l.zap.Check(level, format(record, err))
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, len(record)+4)
	fields = append(fields, logger.Stringer(SeverityKey, severity))
	if !id.IsZero() {
		fields = append(fields, logger.Int(EventIDKey, id.ID), logger.String(EventNameKey, id.Name))
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		if k != redirect.KeyMessage {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		fields = append(fields, logger.Any(FieldKey(k), record[k]))
	}

	if err != nil {
		fields = append(fields, logger.Error(err))
	}

	ce.Write(fields...)
}

// Level maps a severity to the zap level it is written at. SeverityNone is
// never written.
func Level(severity redirect.Severity) (zapcore.Level, bool) {
	switch severity {
	case redirect.SeverityTrace, redirect.SeverityDebug:
		return zapcore.DebugLevel, true
	case redirect.SeverityInformation:
		return zapcore.InfoLevel, true
	case redirect.SeverityWarning:
		return zapcore.WarnLevel, true
	case redirect.SeverityError, redirect.SeverityCritical:
		// DPanic and above would panic or exit on the caller's goroutine
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InvalidLevel, false
	}
}
