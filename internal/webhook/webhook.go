// Package webhook receives message events from the WhatsApp gateway
// and hands them to the bot processor. The gateway owns the session;
// this endpoint is its only way into the application.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dcamposl/uniwabot-go/internal/bot"
	"github.com/dcamposl/uniwabot-go/internal/config"
	"github.com/dcamposl/uniwabot-go/internal/ctxutil"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
	"github.com/dcamposl/uniwabot-go/internal/sentry"
)

// maxEventsPerBatch caps one webhook delivery to bound memory and
// processing time.
const maxEventsPerBatch = 32

// maxBodyBytes caps the webhook request body.
const maxBodyBytes = 1 << 20

// signatureHeader carries the hex HMAC-SHA256 of the raw body, keyed
// with the shared gateway token.
const signatureHeader = "X-Gateway-Signature"

// Event is one message event as delivered by the gateway.
type Event struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"` // Unix seconds
	FromMe    bool   `json:"fromMe"`
	IsGroup   bool   `json:"isGroup"`
}

// payload is the webhook request body.
type payload struct {
	Events []Event `json:"events"`
}

// Processor consumes inbound messages. Implemented by bot.Processor.
type Processor interface {
	Process(ctx context.Context, msg bot.Inbound)
}

// Handler handles gateway webhook deliveries.
type Handler struct {
	secret    string
	log       *logger.Logger
	metrics   *metrics.Metrics
	processor Processor
	wg        sync.WaitGroup
}

// NewHandler creates a webhook Handler. secret is the shared gateway
// token; when empty, signature verification is skipped.
func NewHandler(secret string, log *logger.Logger, m *metrics.Metrics, p Processor) *Handler {
	return &Handler{
		secret:    secret,
		log:       log.WithModule("webhook"),
		metrics:   m,
		processor: p,
	}
}

// Handle is the gin handler for the webhook endpoint. It acknowledges
// the gateway immediately and processes events asynchronously so slow
// human-like delays never stall the gateway.
func (h *Handler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.metrics.WebhookRequestsTotal.WithLabelValues("rejected").Inc()
		c.Status(http.StatusBadRequest)
		return
	}

	if !h.verifySignature(body, c.GetHeader(signatureHeader)) {
		h.log.Warn("invalid webhook signature")
		h.metrics.WebhookRequestsTotal.WithLabelValues("rejected").Inc()
		c.Status(http.StatusUnauthorized)
		return
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		h.log.WithError(err).Warn("malformed webhook payload")
		h.metrics.WebhookRequestsTotal.WithLabelValues("rejected").Inc()
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusOK)
	h.metrics.WebhookRequestsTotal.WithLabelValues("accepted").Inc()

	events := p.Events
	if len(events) > maxEventsPerBatch {
		h.log.WithField("event_count", len(events)).Warn("webhook batch too large, truncating")
		events = events[:maxEventsPerBatch]
	}

	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.log.WithField("panic", r).Error("panic in async event processing")
				sentry.CaptureMessage(fmt.Sprintf("webhook panic: %v", r))
			}
		}()

		for _, ev := range events {
			h.processEvent(ev)
		}
	})
}

func (h *Handler) processEvent(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), config.WebhookProcessing)
	defer cancel()
	if ev.ID != "" {
		ctx = ctxutil.WithRequestID(ctx, ev.ID)
	}

	msg := bot.Inbound{
		MessageID: ev.ID,
		Sender:    ev.From,
		Body:      ev.Body,
		FromSelf:  ev.FromMe,
		FromGroup: ev.IsGroup,
	}
	if ev.Timestamp > 0 {
		msg.Timestamp = time.Unix(ev.Timestamp, 0)
	}
	h.processor.Process(ctx, msg)
}

// verifySignature checks the HMAC-SHA256 of the raw body.
func (h *Handler) verifySignature(body []byte, header string) bool {
	if h.secret == "" {
		return true
	}

	want, err := hex.DecodeString(header)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), want)
}

// Wait blocks until all in-flight event batches finish, for graceful
// shutdown.
func (h *Handler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
