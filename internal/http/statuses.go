package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/observe"
	"github.com/mrlokans/bookshelf/internal/usecase"
)

type StatusesController struct {
	list *usecase.GetReadStatuses
}

func NewStatusesController(uc UseCases) *StatusesController {
	return &StatusesController{list: uc.GetReadStatuses}
}

// List handles GET /api/statuses
func (sc *StatusesController) List(c *gin.Context) {
	statuses, err := observe.Get(c.Request.Context(), sc.list.Execute)
	if err != nil {
		respondAppError(c, err, "list statuses")
		return
	}
	c.JSON(http.StatusOK, statuses)
}
