package redirect_test

import (
	"sync"

	"github.com/rainbow-me/logredirect/redirect"
)

// fakeRoot is an in-memory source hierarchy root.
type fakeRoot struct {
	mu        sync.Mutex
	appenders []redirect.Appender
	addErr    error
}

func (r *fakeRoot) AddAppender(a redirect.Appender) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appenders = append(r.appenders, a)
	return nil
}

func (r *fakeRoot) RemoveAppender(a redirect.Appender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.appenders[:0]
	for _, v := range r.appenders {
		if v != a {
			kept = append(kept, v)
		}
	}
	r.appenders = kept
}

func (r *fakeRoot) emit(event redirect.Event) {
	r.mu.Lock()
	appenders := append([]redirect.Appender(nil), r.appenders...)
	r.mu.Unlock()
	for _, a := range appenders {
		a.Append(event)
	}
}

type logCall struct {
	Logger   string
	Severity redirect.Severity
	ID       redirect.EventID
	Record   redirect.Record
	Err      error
	Text     string
}

// recordingFactory captures every Log call across all the loggers it creates.
type recordingFactory struct {
	mu      sync.Mutex
	calls   []logCall
	created []string
}

func (f *recordingFactory) CreateLogger(name string) redirect.Logger {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, name)
	return &recordingLogger{name: name, factory: f}
}

func (f *recordingFactory) Calls() []logCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]logCall(nil), f.calls...)
}

type recordingLogger struct {
	name    string
	factory *recordingFactory
}

func (l *recordingLogger) Log(severity redirect.Severity, id redirect.EventID, record redirect.Record, err error, format redirect.Formatter) {
	l.factory.mu.Lock()
	defer l.factory.mu.Unlock()
	l.factory.calls = append(l.factory.calls, logCall{
		Logger:   l.name,
		Severity: severity,
		ID:       id,
		Record:   record,
		Err:      err,
		Text:     format(record, err),
	})
}
