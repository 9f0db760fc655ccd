// Package transport abstracts the WhatsApp session. The bot never
// talks to WhatsApp directly; an external gateway process owns the
// session and exposes a small HTTP API for sending.
package transport

import "context"

// Transport sends messages through the WhatsApp session.
type Transport interface {
	// MarkRead marks the sender's chat as read.
	MarkRead(ctx context.Context, senderID string) error

	// SendTyping shows the typing indicator in the sender's chat.
	SendTyping(ctx context.Context, senderID string) error

	// SendReply sends text as a reply in the sender's chat.
	SendReply(ctx context.Context, senderID, text string) error

	// SendMessage sends text to an arbitrary number, used for
	// department notifications.
	SendMessage(ctx context.Context, number, text string) error
}
