package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/exporters"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ExportQueue is the slice of tasks.Client the export endpoints use.
type ExportQueue interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
	Status(ctx context.Context, taskID string) (string, error)
}

// ExportController runs markdown exports, on the task queue when one is
// configured and inline otherwise.
type ExportController struct {
	queue ExportQueue
	books exporters.BooksLister
	dir   string
}

func NewExportController(queue ExportQueue, books exporters.BooksLister, dir string) *ExportController {
	return &ExportController{queue: queue, books: books, dir: dir}
}

type exportRequest struct {
	// Dir overrides the configured export directory
	Dir string `json:"dir"`
}

// Export handles POST /api/export
func (ec *ExportController) Export(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid export request")
			return
		}
	}

	if ec.queue == nil {
		ec.exportInline(c, req.Dir)
		return
	}

	ids, err := ec.queue.Enqueue(tasks.ExportTask{Dir: req.Dir})
	if err != nil {
		respondInternalError(c, err, "enqueue export")
		return
	}
	respondAccepted(c, "export enqueued", gin.H{"task_id": ids[0]})
}

func (ec *ExportController) exportInline(c *gin.Context, dir string) {
	if dir == "" {
		dir = ec.dir
	}

	result, err := exporters.ExportLibrary(c.Request.Context(), ec.books, dir)
	if err != nil {
		respondInternalError(c, err, "export")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "export finished", Data: result})
}

// TaskStatus handles GET /api/tasks/:id
func (ec *ExportController) TaskStatus(c *gin.Context) {
	if ec.queue == nil {
		respondNotFound(c, "task queue")
		return
	}

	taskID := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := ec.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == "not_found" {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": status,
	})
}
