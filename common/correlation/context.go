package correlation

import (
	"context"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/rainbow-me/logredirect/common/logger"
)

// Standard correlation keys
const (
	TenancyKey = "tenancy"
	IDKey      = "correlation_id"
)

type correlationContextKey struct{}

// Data represents the correlation context data
type Data map[string]string

// Set merges values into a copy of the context's correlation data. Empty keys
// and values are skipped. The returned context's logger carries the merged
// data as fields.
func Set(ctx context.Context, values map[string]string) context.Context {
	if len(values) == 0 {
		return ctx
	}

	merged := maps.Clone(Get(ctx))
	for k, v := range values {
		if k != "" && v != "" {
			merged[k] = v
		}
	}

	ctx = context.WithValue(ctx, correlationContextKey{}, merged)
	return logger.ContextWithFields(ctx, toLogFields(merged))
}

// SetKey sets a single key, removing it when value is empty.
func SetKey(ctx context.Context, key, value string) context.Context {
	if key == "" {
		return ctx
	}

	updated := maps.Clone(Get(ctx))
	if value != "" {
		updated[key] = value
	} else {
		delete(updated, key)
	}

	ctx = context.WithValue(ctx, correlationContextKey{}, updated)
	return logger.ContextWithFields(ctx, toLogFields(updated))
}

// Get returns the correlation data from the context, never nil.
// Treat the result as read-only.
func Get(ctx context.Context) Data {
	if ctx == nil {
		return make(Data)
	}
	if v, ok := ctx.Value(correlationContextKey{}).(Data); ok && v != nil {
		return v
	}
	return make(Data)
}

// ID returns the correlation ID, or "".
func ID(ctx context.Context) string {
	return Get(ctx)[IDKey]
}

// SetID sets the correlation ID.
func SetID(ctx context.Context, correlationID string) context.Context {
	return SetKey(ctx, IDKey, correlationID)
}

// EnsureID sets a random correlation ID unless one is present.
func EnsureID(ctx context.Context) context.Context {
	if ID(ctx) != "" {
		return ctx
	}
	return SetID(ctx, uuid.NewString())
}

// Tenancy returns the tenancy value, or "".
func Tenancy(ctx context.Context) string {
	return Get(ctx)[TenancyKey]
}

// SetTenancy sets the tenancy value.
func SetTenancy(ctx context.Context, tenancy string) context.Context {
	return SetKey(ctx, TenancyKey, tenancy)
}

// Keys returns the correlation keys present in the context, sorted.
func Keys(ctx context.Context) []string {
	return slices.Sorted(maps.Keys(Get(ctx)))
}

func toLogFields(data Data) []logger.Field {
	fields := make([]logger.Field, 0, len(data))
	for _, key := range slices.Sorted(maps.Keys(data)) {
		fields = append(fields, logger.String(key, data[key]))
	}
	return fields
}
