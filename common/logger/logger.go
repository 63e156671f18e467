package logger

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rainbow-me/logredirect/common/env"
)

const (
	StringJSONEncoderName = "string_json"
	MessageKey            = "message"
	PanicValueKey         = "panic_value"
)

// Logger is the process logger. Redirected events and the redirector's own
// diagnostics are both written through it.
type Logger = zap.Logger

var (
	instance atomic.Pointer[Logger]

	registerEncoderOnce sync.Once
	errRegisterEncoder  error
)

// NewLogger wraps an existing zap logger.
func NewLogger(l *zap.Logger) *Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Instance returns the process logger set by SetInstance, or a no-op logger.
func Instance() *Logger {
	if l := instance.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetInstance replaces the process logger, returning the previous one.
func SetInstance(l *Logger) *Logger {
	return instance.Swap(l)
}

// WithPanic renders a recovered panic value as log fields.
func WithPanic(panicValue any) []Field {
	fields := []Field{String(PanicValueKey, fmt.Sprintf("%+v", panicValue))}
	if err, ok := panicValue.(error); ok {
		fields = append(fields, Error(err))
	}
	return fields
}

type stringJSONEncoder struct {
	zapcore.Encoder
}

func newStringJSONEncoder(cfg zapcore.EncoderConfig) *stringJSONEncoder {
	return &stringJSONEncoder{zapcore.NewJSONEncoder(cfg)}
}

// NewStringJSONEncoder returns an encoder that encodes the JSON log dict as a string
// so the log processing pipeline can correctly process logs with nested JSON.
func NewStringJSONEncoder(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
	return newStringJSONEncoder(cfg), nil
}

func registerStringJSONEncoder() error {
	registerEncoderOnce.Do(func() {
		errRegisterEncoder = zap.RegisterEncoder(StringJSONEncoderName, NewStringJSONEncoder)
	})
	return errRegisterEncoder
}

// InitLogger initializes and returns a configured Zap logger with environment-specific settings.
func InitLogger(zapOpts ...zap.Option) (*Logger, error) {
	var (
		config  zap.Config
		options []zap.Option
	)

	currentEnv := os.Getenv(env.ApplicationEnvKey)
	if err := env.IsEnvironmentValid(currentEnv); err != nil {
		return nil, err
	}

	if err := registerStringJSONEncoder(); err != nil {
		return nil, errors.Wrap(err, "failed to register string JSON encoder")
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "timestamp",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    MessageKey,
		StacktraceKey: "stacktrace",
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	switch currentEnv {
	case string(env.EnvironmentLocal):
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.MessageKey = MessageKey
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	case string(env.EnvironmentLocalDocker), string(env.EnvironmentDevelopment), string(env.EnvironmentStaging):
		// JSON logs for ingestion, debug level so redirected trace/debug events survive
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig = encoderConfig
		config.Encoding = StringJSONEncoderName

	case string(env.EnvironmentProduction):
		config = zap.NewProductionConfig()
		config.EncoderConfig = encoderConfig
		config.Encoding = StringJSONEncoderName
		config.Level.SetLevel(zap.InfoLevel)
	}

	// caller would point at the redirector rather than the original call site
	config.DisableCaller = true
	options = append(options, zap.AddStacktrace(zap.ErrorLevel))
	options = append(options, zapOpts...)

	logger, err := config.Build(options...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	return logger, nil
}
