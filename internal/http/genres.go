package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
	"github.com/mrlokans/bookshelf/internal/usecase"
)

// GenresController serves /api/genres.
type GenresController struct {
	list      *usecase.GetGenres
	create    *usecase.CreateGenre
	rename    *usecase.RenameGenre
	favourite *usecase.SetGenreFavourite
}

func NewGenresController(uc UseCases) *GenresController {
	return &GenresController{
		list:      uc.GetGenres,
		create:    uc.CreateGenre,
		rename:    uc.RenameGenre,
		favourite: uc.SetGenreFavourite,
	}
}

type createGenreRequest struct {
	Name string `json:"name" binding:"required"`
}

func (gc *GenresController) List(c *gin.Context) {
	genres, err := observe.Get(c.Request.Context(), gc.list.Execute)
	if err != nil {
		respondAppError(c, err, "list genres")
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (gc *GenresController) Create(c *gin.Context) {
	var req createGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondBadRequest(c, "name is required")
		return
	}

	id, err := gc.create.Execute(c.Request.Context(), models.GenreInput{Name: strings.TrimSpace(req.Name)})
	if err != nil {
		respondAppError(c, err, "create genre")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

// Rename handles PUT /api/genres/:id
func (gc *GenresController) Rename(c *gin.Context) {
	var req createGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondBadRequest(c, "name is required")
		return
	}

	id, err := gc.rename.Execute(c.Request.Context(), c.Param("id"), models.GenreInput{Name: strings.TrimSpace(req.Name)})
	if err != nil {
		respondAppError(c, err, "rename genre")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (gc *GenresController) SetFavourite(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "favourite is required")
		return
	}

	if err := gc.favourite.Execute(c.Request.Context(), c.Param("id"), *req.Favourite); err != nil {
		respondAppError(c, err, "set genre favourite")
		return
	}
	respondSuccess(c, "genre updated")
}
