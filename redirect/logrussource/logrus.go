// Package logrussource exposes a logrus logger as a redirect.Root, so every
// entry it emits reaches an attached redirect.Appender through a logrus hook.
package logrussource

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/rainbow-me/logredirect/common/correlation"
	"github.com/rainbow-me/logredirect/redirect"
)

// Fields consumed by the translation rather than forwarded as properties.
const (
	LoggerKey   = "logger"
	ThreadKey   = "thread"
	IdentityKey = "identity"
)

// Root attaches appenders to a single logrus logger.
type Root struct {
	logger   *logrus.Logger
	domain   string
	userName string

	mu       sync.Mutex
	attached map[redirect.Appender]*hook
}

var roots sync.Map // *logrus.Logger -> *Root

// For returns the Root of l. Repeated calls for the same logger return the
// same Root. A nil logger yields a nil Root, which refuses appenders.
func For(l *logrus.Logger) *Root {
	if l == nil {
		return nil
	}
	if r, ok := roots.Load(l); ok {
		return r.(*Root)
	}
	r, _ := roots.LoadOrStore(l, &Root{
		logger:   l,
		domain:   processName(),
		userName: currentUserName(),
		attached: make(map[redirect.Appender]*hook),
	})
	return r.(*Root)
}

// Standard returns the Root of logrus.StandardLogger, the process-wide root.
func Standard() *Root {
	return For(logrus.StandardLogger())
}

// Named returns an entry logging under name.
func Named(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField(LoggerKey, name)
}

// AddAppender installs a hook delivering every entry to appender. Adding the
// same appender twice installs one hook.
//
// logrus exposes no locked read of its hook table, so AddAppender and
// RemoveAppender must not run concurrently with other code calling AddHook or
// ReplaceHooks on the same logger. Attach during startup and detach at
// shutdown. Logging concurrently is safe.
func (r *Root) AddAppender(appender redirect.Appender) error {
	if r == nil || r.logger == nil {
		return errors.WithStack(redirect.ErrNoHierarchy)
	}
	if appender == nil {
		return errors.New("logrussource: nil appender")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attached[appender]; ok {
		return nil
	}
	h := &hook{root: r, appender: appender}
	r.logger.AddHook(h)
	r.attached[appender] = h

	return nil
}

// RemoveAppender uninstalls the hook of appender, keeping every other hook of
// the logger. It is subject to the same constraint as AddAppender.
func (r *Root) RemoveAppender(appender redirect.Appender) {
	if r == nil || r.logger == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	own, ok := r.attached[appender]
	if !ok {
		return
	}
	delete(r.attached, appender)

	hooks := make(logrus.LevelHooks, len(r.logger.Hooks))
	for level, levelHooks := range r.logger.Hooks {
		for _, h := range levelHooks {
			if h == logrus.Hook(own) {
				continue
			}
			hooks[level] = append(hooks[level], h)
		}
	}
	r.logger.ReplaceHooks(hooks)
}

// Event translates a logrus entry. Correlation data on the entry's context
// becomes properties, unless a field of the same name is set.
func (r *Root) Event(entry *logrus.Entry) redirect.Event {
	event := redirect.Event{
		Message:   entry.Message,
		Level:     LevelName(entry.Level),
		TimeStamp: entry.Time,
		Domain:    r.domain,
		UserName:  r.userName,
	}

	var correlated correlation.Data
	if entry.Context != nil {
		correlated = correlation.Get(entry.Context)
	}
	if len(entry.Data) == 0 && len(correlated) == 0 {
		return event
	}

	properties := make(map[string]any, len(entry.Data)+len(correlated))
	for k, v := range correlated {
		properties[k] = v
	}
	for k, v := range entry.Data {
		switch k {
		case LoggerKey:
			event.LoggerName = fmt.Sprint(v)
			continue
		case ThreadKey:
			event.ThreadName = fmt.Sprint(v)
			continue
		case IdentityKey:
			event.Identity = fmt.Sprint(v)
			continue
		case logrus.ErrorKey:
			if err, ok := v.(error); ok {
				event.Err = err
				continue
			}
		}
		properties[k] = v
	}
	if len(properties) != 0 {
		event.Properties = properties
	}

	return event
}

// LevelName returns the source level name of a logrus level, as understood by
// redirect.MapLevel.
func LevelName(level logrus.Level) string {
	switch level {
	case logrus.PanicLevel:
		return "EMERGENCY"
	case logrus.FatalLevel:
		return "FATAL"
	case logrus.ErrorLevel:
		return "ERROR"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.TraceLevel:
		return "TRACE"
	default:
		return ""
	}
}

type hook struct {
	root     *Root
	appender redirect.Appender
}

func (h *hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire always returns nil; a failed redirect is handled by the appender.
func (h *hook) Fire(entry *logrus.Entry) error {
	h.appender.Append(h.root.Event(entry))
	return nil
}

func processName() string {
	if len(os.Args) == 0 {
		return ""
	}
	return filepath.Base(os.Args[0])
}

func currentUserName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
