// Package logrfactory implements redirect.Factory on top of a logr.Logger.
package logrfactory

import (
	"slices"

	"github.com/go-logr/logr"

	"github.com/rainbow-me/logredirect/redirect"
)

const (
	SeverityKey  = "severity"
	EventIDKey   = "event_id"
	EventNameKey = "event_name"
	ErrorKey     = "error"

	// RecordKeyPrefix is prepended to record keys that would collide with the
	// keys this package or logr itself writes.
	RecordKeyPrefix = "record."
)

// Key returns the logr key used for a record key.
func Key(key string) string {
	switch key {
	case SeverityKey, EventIDKey, EventNameKey, ErrorKey:
		return RecordKeyPrefix + key
	default:
		return key
	}
}

// Factory creates logr loggers named after the source logger.
type Factory struct {
	base logr.Logger
}

func New(base logr.Logger) *Factory {
	return &Factory{base: base}
}

func (f *Factory) CreateLogger(name string) redirect.Logger {
	return &Logger{logr: f.base.WithName(name)}
}

type Logger struct {
	logr logr.Logger
}

func (l *Logger) Log(severity redirect.Severity, id redirect.EventID, record redirect.Record, err error, format redirect.Formatter) {
	switch severity {
	case redirect.SeverityNone:
		return
	case redirect.SeverityError, redirect.SeverityCritical:
		// logr never filters errors by verbosity
		l.logr.Error(err, format(record, err), keysAndValues(severity, id, record)...)
	default:
		v := l.logr.V(Verbosity(severity))
		if !v.Enabled() {
			return
		}
		if err != nil {
			v.Info(format(record, err), append(keysAndValues(severity, id, record), ErrorKey, err)...)
			return
		}
		v.Info(format(record, err), keysAndValues(severity, id, record)...)
	}
}

// Verbosity returns the logr V-level of a non-error severity.
func Verbosity(severity redirect.Severity) int {
	switch severity {
	case redirect.SeverityTrace:
		return 2
	case redirect.SeverityDebug:
		return 1
	default:
		return 0
	}
}

func keysAndValues(severity redirect.Severity, id redirect.EventID, record redirect.Record) []any {
	keys := make([]string, 0, len(record))
	for k := range record {
		if k != redirect.KeyMessage {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	kv := make([]any, 0, 2*len(keys)+6)
	kv = append(kv, SeverityKey, severity.String())
	if !id.IsZero() {
		kv = append(kv, EventIDKey, id.ID, EventNameKey, id.Name)
	}
	for _, k := range keys {
		kv = append(kv, Key(k), record[k])
	}
	return kv
}
