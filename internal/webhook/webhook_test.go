package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/uniwabot-go/internal/bot"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
)

type recordingProcessor struct {
	mu       sync.Mutex
	messages []bot.Inbound
}

func (r *recordingProcessor) Process(_ context.Context, msg bot.Inbound) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recordingProcessor) all() []bot.Inbound {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bot.Inbound, len(r.messages))
	copy(out, r.messages)
	return out
}

func newTestHandler(t *testing.T, secret string) (*Handler, *recordingProcessor) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewWithWriter("error", io.Discard)
	m := metrics.New(prometheus.NewRegistry())
	p := &recordingProcessor{}
	return NewHandler(secret, log, m, p), p
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// deliver routes the request through a real engine so the response
// status is flushed the same way it is in production.
func deliver(h *Handler, body []byte, signature string) *httptest.ResponseRecorder {
	router := gin.New()
	router.POST("/webhook", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func waitProcessed(t *testing.T, h *Handler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.Wait(ctx))
}

func TestHandleAcceptsValidBatch(t *testing.T) {
	t.Parallel()

	h, p := newTestHandler(t, "secret")
	body, _ := json.Marshal(payload{Events: []Event{
		{ID: "m1", From: "59170000001", Body: "hola", Timestamp: 1756700000},
		{ID: "m2", From: "59170000002", Body: "", FromMe: true},
	}})

	w := deliver(h, body, sign("secret", body))
	assert.Equal(t, http.StatusOK, w.Code)

	waitProcessed(t, h)
	msgs := p.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].MessageID)
	assert.Equal(t, "59170000001", msgs[0].Sender)
	assert.Equal(t, time.Unix(1756700000, 0), msgs[0].Timestamp)
	assert.True(t, msgs[1].FromSelf)
}

func TestHandleRejectsBadSignature(t *testing.T) {
	t.Parallel()

	h, p := newTestHandler(t, "secret")
	body, _ := json.Marshal(payload{Events: []Event{{ID: "m1", From: "x", Body: "hola"}}})

	w := deliver(h, body, sign("wrong", body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	waitProcessed(t, h)
	assert.Empty(t, p.all())
}

func TestHandleRejectsMissingSignature(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, "secret")
	body, _ := json.Marshal(payload{Events: []Event{{ID: "m1"}}})

	w := deliver(h, body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleSkipsVerificationWithoutSecret(t *testing.T) {
	t.Parallel()

	h, p := newTestHandler(t, "")
	body, _ := json.Marshal(payload{Events: []Event{{ID: "m1", From: "x", Body: "hola"}}})

	w := deliver(h, body, "")
	assert.Equal(t, http.StatusOK, w.Code)

	waitProcessed(t, h)
	assert.Len(t, p.all(), 1)
}

func TestHandleRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t, "secret")
	body := []byte("{not json")

	w := deliver(h, body, sign("secret", body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTruncatesOversizedBatch(t *testing.T) {
	t.Parallel()

	h, p := newTestHandler(t, "")
	events := make([]Event, maxEventsPerBatch+10)
	for i := range events {
		events[i] = Event{ID: "m", From: "x", Body: "hola"}
	}
	body, _ := json.Marshal(payload{Events: events})

	w := deliver(h, body, "")
	assert.Equal(t, http.StatusOK, w.Code)

	waitProcessed(t, h)
	assert.Len(t, p.all(), maxEventsPerBatch)
}
