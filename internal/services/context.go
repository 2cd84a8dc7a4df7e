package services

import "context"

type contextKey string

const (
	inputKey   contextKey = "input"
	batchIDKey contextKey = "batch_id"
)

// WithInput annotates context with the input path or literal being processed.
func WithInput(ctx context.Context, input string) context.Context {
	if input == "" {
		return ctx
	}
	return context.WithValue(ctx, inputKey, input)
}

// InputFromContext extracts the input identifier if present.
func InputFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(inputKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithBatchID annotates context with the batch identifier.
func WithBatchID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, batchIDKey, id)
}

// BatchIDFromContext extracts the batch identifier if present.
func BatchIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(batchIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
