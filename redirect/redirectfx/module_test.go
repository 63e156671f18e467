package redirectfx_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"

	"github.com/rainbow-me/logredirect/common/test"
	"github.com/rainbow-me/logredirect/redirect"
	"github.com/rainbow-me/logredirect/redirect/logrussource"
	"github.com/rainbow-me/logredirect/redirect/redirectfx"
)

func newLogrus() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.TraceLevel)
	return l
}

func TestModule(t *testing.T) {
	source := newLogrus()
	base, logs := test.NewObservedLogger(zapcore.DebugLevel)

	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(base),
		fx.Provide(func() redirect.Root { return logrussource.For(source) }),
		redirectfx.ZapFactory(),
		redirectfx.RegisterRedirector(),
	)
	app.RequireStart()

	logrussource.Named(source, "Disk").Warn("disk low")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Disk", logs.All()[0].LoggerName)

	app.RequireStop()
	source.Warn("after stop")
	assert.Equal(t, 1, logs.Len())
}

func TestModule_Restart(t *testing.T) {
	source := newLogrus()
	base, _ := test.NewObservedLogger(zapcore.DebugLevel)

	for range 2 {
		app := fxtest.New(t,
			fx.NopLogger,
			fx.Supply(base),
			fx.Provide(func() redirect.Root { return logrussource.For(source) }),
			redirectfx.ZapFactory(),
			redirectfx.RegisterRedirector(),
		)
		app.RequireStart().RequireStop()
	}
}

func TestModule_DuplicateRegistrationFails(t *testing.T) {
	source := newLogrus()
	root := logrussource.For(source)
	factory := redirect.FactoryFunc(func(string) redirect.Logger { return nil })

	existing, err := redirect.New(root, factory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = existing.Close() })

	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() redirect.Root { return root }),
		fx.Provide(func() redirect.Factory { return factory }),
		redirectfx.RegisterRedirector(),
	)
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "already attached")
}

func TestLogrusRoot(t *testing.T) {
	var root redirect.Root
	app := fxtest.New(t,
		fx.NopLogger,
		redirectfx.LogrusRoot(),
		fx.Populate(&root),
	)
	defer app.RequireStart().RequireStop()
	assert.Same(t, logrussource.Standard(), root)
}

func TestModule_UsesDiagnosticsLogger(t *testing.T) {
	source := newLogrus()
	diag, logs := test.NewObservedLogger(zapcore.ErrorLevel)

	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(diag),
		fx.Provide(func() redirect.Root { return logrussource.For(source) }),
		fx.Provide(func() redirect.Factory {
			return redirect.FactoryFunc(func(string) redirect.Logger { return nil })
		}),
		redirectfx.RegisterRedirector(),
	)
	defer app.RequireStart().RequireStop()

	source.Info("dropped")
	assert.Equal(t, 1, logs.Len())
}
