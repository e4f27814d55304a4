// Пакет ctxmeta — метаданные, которые прокидываются через context.Context
// (request_id HTTP-запроса, batch_id обрабатываемого батча, trace_id).
// HTTP-слой, пайплайн и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyBatchID   ctxKey = "batch_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return value(ctx, KeyRequestID)
}

// WithBatchID кладёт идентификатор батча сообщений.
func WithBatchID(ctx context.Context, batchID string) context.Context {
	return withValue(ctx, KeyBatchID, batchID)
}

func BatchIDFromContext(ctx context.Context) (string, bool) {
	return value(ctx, KeyBatchID)
}

func withValue(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func value(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
