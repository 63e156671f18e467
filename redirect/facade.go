package redirect

// EventID identifies a kind of event on the destination side. The zero value
// is the empty identifier.
type EventID struct {
	ID   int
	Name string
}

func (id EventID) IsZero() bool { return id == EventID{} }

// Formatter renders a record and its error to the final message text.
type Formatter func(record Record, err error) string

// RenderRecord is the Formatter used for every redirected event.
func RenderRecord(record Record, _ error) string {
	return record.Render()
}

// Logger is a named destination logger.
type Logger interface {
	Log(severity Severity, id EventID, record Record, err error, format Formatter)
}

// Factory creates named destination loggers. Implementations must be safe for
// concurrent use, and CreateLogger must be idempotent for a given name.
type Factory interface {
	CreateLogger(name string) Logger
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(name string) Logger

func (f FactoryFunc) CreateLogger(name string) Logger { return f(name) }

// Appender receives every event flowing through a source hierarchy.
// Append is called synchronously on the logging goroutine. Appenders are
// compared by identity, so implementations must be comparable.
type Appender interface {
	Append(event Event)
}

// Root is the attachment point of a source logging hierarchy. Roots must be
// comparable.
type Root interface {
	AddAppender(appender Appender) error
	RemoveAppender(appender Appender)
}
