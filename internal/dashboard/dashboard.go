// Package dashboard serves the read-only statistics panel: a small
// HTML page plus the JSON API feeding it. It only ever reads from
// storage; operating the bot stays out of scope.
package dashboard

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/storage"
)

//go:embed index.html
var indexHTML []byte

// recentLimit is how many messages the panel lists.
const recentLimit = 50

// Handler serves the dashboard endpoints.
type Handler struct {
	db  *storage.DB
	log *logger.Logger
}

// NewHandler creates a dashboard Handler.
func NewHandler(db *storage.DB, log *logger.Logger) *Handler {
	return &Handler{db: db, log: log.WithModule("dashboard")}
}

// Register mounts the dashboard routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.index)
	r.GET("/api/stats", h.stats)
	r.GET("/api/messages/recent", h.recentMessages)
}

func (h *Handler) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// statsResponse combines message and redirect aggregates.
type statsResponse struct {
	Messages  *storage.Stats         `json:"messages"`
	Redirects *storage.RedirectStats `json:"redirects"`
}

func (h *Handler) stats(c *gin.Context) {
	ctx := c.Request.Context()

	msgStats, err := h.db.Stats(ctx)
	if err != nil {
		h.log.WithError(err).ErrorContext(ctx, "failed to load message stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	redirStats, err := h.db.RedirectStats(ctx)
	if err != nil {
		h.log.WithError(err).ErrorContext(ctx, "failed to load redirect stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, statsResponse{Messages: msgStats, Redirects: redirStats})
}

func (h *Handler) recentMessages(c *gin.Context) {
	ctx := c.Request.Context()

	messages, err := h.db.RecentMessages(ctx, recentLimit)
	if err != nil {
		h.log.WithError(err).ErrorContext(ctx, "failed to load recent messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	if messages == nil {
		messages = []storage.Message{}
	}

	c.JSON(http.StatusOK, messages)
}
