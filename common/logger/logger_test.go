package logger

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rainbow-me/logredirect/common/env"
)

func TestInitLogger(t *testing.T) {
	t.Run("invalid environment", func(t *testing.T) {
		t.Setenv(env.ApplicationEnvKey, "nowhere")
		_, err := InitLogger()
		require.Error(t, err)
		assert.True(t, errors.Is(err, env.ErrInvalidEnvironment))
		assert.Contains(t, err.Error(), "invalid environment")
	})

	for _, e := range []env.Environment{env.EnvironmentLocal, env.EnvironmentStaging, env.EnvironmentProduction} {
		t.Run(e.String(), func(t *testing.T) {
			t.Setenv(env.ApplicationEnvKey, e.String())
			l, err := InitLogger()
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, e != env.EnvironmentProduction, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestInstance(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := SetInstance(zap.New(core))
	t.Cleanup(func() { SetInstance(prev) })

	Instance().Info("hello")
	FromContext(context.Background()).Info("from context")
	require.Equal(t, 2, logs.Len())

	other, otherLogs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(other))
	ctx = ContextWithFields(ctx, []Field{String("k", "v")})
	FromContext(ctx).Info("scoped")
	require.Equal(t, 1, otherLogs.Len())
	assert.Equal(t, "v", otherLogs.All()[0].ContextMap()["k"])
}

func TestWithPanic(t *testing.T) {
	fields := WithPanic("boom")
	require.Len(t, fields, 1)
	assert.Equal(t, PanicValueKey, fields[0].Key)
	assert.Equal(t, "boom", fields[0].String)

	fields = WithPanic(errors.New("bad"))
	require.Len(t, fields, 2)
	assert.Equal(t, "error", fields[1].Key)
}
