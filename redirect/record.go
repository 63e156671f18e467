package redirect

import (
	"fmt"
	"reflect"
)

// Fixed keys present in every Record.
const (
	KeyMessage    = "Message"
	KeyLevel      = "Log4NetLevel"
	KeyLoggerName = "Log4NetLoggerName"
	KeyTimeStamp  = "Log4NetTimeStamp"
	KeyThreadName = "Log4NetThreadName"
	KeyDomain     = "Log4NetDomain"
	KeyIdentity   = "Log4NetIdentity"
	KeyUserName   = "Log4NetUserName"
)

// Record is the structured payload forwarded to a destination logger. A new
// Record is built for every event and is not retained.
type Record map[string]any

// NewRecord builds the Record for an event: the fixed keys first, then every
// property, so a property with a fixed key's name replaces it.
func NewRecord(event Event) Record {
	record := make(Record, 8+len(event.Properties))
	record[KeyMessage] = event.Message
	record[KeyLevel] = event.Level
	record[KeyLoggerName] = event.LoggerName
	record[KeyTimeStamp] = event.TimeStamp
	record[KeyThreadName] = event.ThreadName
	record[KeyDomain] = event.Domain
	record[KeyIdentity] = event.Identity
	record[KeyUserName] = event.UserName
	for k, v := range event.Properties {
		record[k] = v
	}
	return record
}

// Render returns the Message entry as text, or "" if it is missing, nil, or
// a nil pointer. No other key contributes.
func (r Record) Render() string {
	switch v := r[KeyMessage].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return fmt.Sprint(v)
	}
}

func (r Record) String() string { return r.Render() }
