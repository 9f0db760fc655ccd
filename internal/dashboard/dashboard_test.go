package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/storage"
)

func setupRouter(t *testing.T) (*gin.Engine, *storage.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := NewHandler(db, logger.NewWithWriter("error", io.Discard))
	r := gin.New()
	h.Register(r)
	return r, db
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndexServesHTML(t *testing.T) {
	t.Parallel()

	r, _ := setupRouter(t)
	w := get(r, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Panel de Control")
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()

	r, db := setupRouter(t)
	ctx := context.Background()
	require.NoError(t, db.RecordMessage(ctx, &storage.Message{
		Sender:         "59170000001",
		Body:           "necesito mi kardex",
		Department:     "REGISTRO",
		Redirected:     true,
		ResponseTimeMs: 2500,
	}))
	require.NoError(t, db.RecordRedirect(ctx, &storage.Redirect{
		Sender:     "59170000001",
		Department: "REGISTRO",
		Link:       "https://wa.me/59177439409",
	}))

	w := get(r, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages  storage.Stats         `json:"messages"`
		Redirects storage.RedirectStats `json:"redirects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Messages.TotalMessages)
	assert.Equal(t, int64(1), resp.Redirects.TotalRedirects)
}

func TestRecentMessagesEndpoint(t *testing.T) {
	t.Parallel()

	r, db := setupRouter(t)
	require.NoError(t, db.RecordMessage(context.Background(), &storage.Message{
		Sender:     "59170000001",
		Body:       "hola",
		Department: "GENERAL",
	}))

	w := get(r, "/api/messages/recent")
	require.Equal(t, http.StatusOK, w.Code)

	var messages []storage.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "GENERAL", messages[0].Department)
}

func TestRecentMessagesEmpty(t *testing.T) {
	t.Parallel()

	r, _ := setupRouter(t)
	w := get(r, "/api/messages/recent")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
