package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/corpix/uarand"

	"github.com/dcamposl/uniwabot-go/internal/errors"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
)

// Gateway endpoints.
const (
	endpointRead    = "/read"
	endpointTyping  = "/typing"
	endpointReply   = "/reply"
	endpointMessage = "/message"
)

// Gateway is the HTTP client for the WhatsApp gateway process.
type Gateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewGateway creates a Gateway client.
func NewGateway(baseURL, token string, timeout time.Duration, m *metrics.Metrics) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		metrics: m,
	}
}

type gatewayRequest struct {
	To   string `json:"to"`
	Text string `json:"text,omitempty"`
}

// MarkRead implements Transport.
func (g *Gateway) MarkRead(ctx context.Context, senderID string) error {
	return g.post(ctx, endpointRead, gatewayRequest{To: senderID})
}

// SendTyping implements Transport.
func (g *Gateway) SendTyping(ctx context.Context, senderID string) error {
	return g.post(ctx, endpointTyping, gatewayRequest{To: senderID})
}

// SendReply implements Transport.
func (g *Gateway) SendReply(ctx context.Context, senderID, text string) error {
	return g.post(ctx, endpointReply, gatewayRequest{To: senderID, Text: text})
}

// SendMessage implements Transport.
func (g *Gateway) SendMessage(ctx context.Context, number, text string) error {
	return g.post(ctx, endpointMessage, gatewayRequest{To: number, Text: text})
}

func (g *Gateway) post(ctx context.Context, endpoint string, payload gatewayRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", uarand.GetRandom())
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		g.record(endpoint, "error", duration)
		return errors.NewGatewayError(endpoint, 0, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.record(endpoint, "error", duration)
		return errors.NewGatewayError(endpoint, resp.StatusCode,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	g.record(endpoint, "success", duration)
	return nil
}

func (g *Gateway) record(endpoint, status string, duration time.Duration) {
	if g.metrics != nil {
		g.metrics.RecordGatewayRequest(endpoint, status, duration)
	}
}
