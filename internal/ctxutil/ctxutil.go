// Package ctxutil provides typed context keys for request-scoped values.
package ctxutil

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	senderIDKey  contextKey = "sender_id"
	messageIDKey contextKey = "message_id"
)

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID from the context, if present.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// WithSenderID returns a context carrying the WhatsApp sender ID.
func WithSenderID(ctx context.Context, senderID string) context.Context {
	return context.WithValue(ctx, senderIDKey, senderID)
}

// GetSenderID returns the sender ID from the context, or empty if absent.
func GetSenderID(ctx context.Context) string {
	id, _ := ctx.Value(senderIDKey).(string)
	return id
}

// WithMessageID returns a context carrying the inbound message ID.
func WithMessageID(ctx context.Context, messageID string) context.Context {
	return context.WithValue(ctx, messageIDKey, messageID)
}

// GetMessageID returns the message ID from the context, or empty if absent.
func GetMessageID(ctx context.Context) string {
	id, _ := ctx.Value(messageIDKey).(string)
	return id
}
