package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database"
)

// HealthResponse reports whether the library is readable and what it holds.
type HealthResponse struct {
	Status  string          `json:"status"`
	Version string          `json:"version,omitempty"`
	Uptime  string          `json:"uptime"`
	Library *database.Stats `json:"library,omitempty"`
	Streams int             `json:"streams"`
	Error   string          `json:"error,omitempty"`
}

type HealthController struct {
	db      *database.Database
	version string
	started time.Time
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version, started: time.Now()}
}

// Status handles GET /health
// Counts every table through the read dispatcher, so a wedged worker pool
// shows up here as well as a dead connection.
func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	}

	if h.db == nil {
		resp.Status = "unhealthy"
		resp.Error = "database not configured"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	resp.Streams = h.db.Changes.Subscribers()
	stats, err := h.db.Counts(c.Request.Context())
	if err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp.Library = &stats
	c.JSON(http.StatusOK, resp)
}
