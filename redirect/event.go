package redirect

import (
	"time"
)

// Event is a single log call as seen by the source framework.
type Event struct {
	Message    string
	Level      string
	LoggerName string
	TimeStamp  time.Time
	ThreadName string
	Domain     string
	Identity   string
	UserName   string
	// Properties are custom fields attached to the call. May be nil.
	Properties map[string]any
	Err        error
}
