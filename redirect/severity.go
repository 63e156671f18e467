package redirect

// Severity is the destination facade's closed set of levels.
type Severity int

const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInformation
	SeverityWarning
	SeverityError
	SeverityCritical
	// SeverityNone marks an event that must not be written.
	SeverityNone
)

var severityNames = [...]string{
	SeverityTrace:       "Trace",
	SeverityDebug:       "Debug",
	SeverityInformation: "Information",
	SeverityWarning:     "Warning",
	SeverityError:       "Error",
	SeverityCritical:    "Critical",
	SeverityNone:        "None",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "Unknown"
	}
	return severityNames[s]
}

// levelSeverities maps source level names, case-sensitive, to severities.
var levelSeverities = map[string]Severity{
	"OFF": SeverityNone,

	"FATAL":     SeverityCritical,
	"EMERGENCY": SeverityCritical,
	"ALERT":     SeverityCritical,
	"CRITICAL":  SeverityCritical,
	"SEVERE":    SeverityCritical,

	"ERROR": SeverityError,

	"WARN":    SeverityWarning,
	"WARNING": SeverityWarning,

	"INFO":   SeverityInformation,
	"NOTICE": SeverityInformation,

	"DEBUG": SeverityDebug,
	"FINE":  SeverityDebug,

	"TRACE":   SeverityTrace,
	"FINER":   SeverityTrace,
	"FINEST":  SeverityTrace,
	"VERBOSE": SeverityTrace,
}

// MapLevel translates a source level name. Unknown and empty names map to
// SeverityDebug.
func MapLevel(name string) Severity {
	if s, ok := levelSeverities[name]; ok {
		return s
	}
	return SeverityDebug
}
