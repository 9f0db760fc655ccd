package config

import "time"

// Named timeouts shared across the application.
//
// The webhook handler acknowledges the gateway immediately and processes
// events asynchronously, so the processing budget is decoupled from the
// HTTP read/write timeouts. Human-like delays (read + typing) can take up
// to ~10s per turn, so the processing budget leaves room for them plus the
// LLM call and the gateway send.
const (
	// WebhookProcessing bounds a single inbound message turn, including
	// artificial delays, classification and the outbound gateway call.
	WebhookProcessing = 60 * time.Second

	// ClassifyRequest bounds a single LLM classification attempt.
	ClassifyRequest = 10 * time.Second

	// GatewaySend bounds a single outbound call to the WhatsApp gateway.
	GatewaySend = 15 * time.Second

	// HTTPRead/Write/Idle apply to the inbound HTTP server.
	HTTPRead  = 10 * time.Second
	HTTPWrite = 30 * time.Second
	HTTPIdle  = 120 * time.Second
)
