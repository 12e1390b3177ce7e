package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/models"
	"github.com/mrlokans/bookshelf/internal/observe"
	"github.com/mrlokans/bookshelf/internal/usecase"
)

// AuthorsController serves /api/authors.
type AuthorsController struct {
	list      *usecase.GetAuthors
	create    *usecase.CreateAuthor
	rename    *usecase.RenameAuthor
	favourite *usecase.SetAuthorFavourite
}

func NewAuthorsController(uc UseCases) *AuthorsController {
	return &AuthorsController{
		list:      uc.GetAuthors,
		create:    uc.CreateAuthor,
		rename:    uc.RenameAuthor,
		favourite: uc.SetAuthorFavourite,
	}
}

type createAuthorRequest struct {
	Name string  `json:"name" binding:"required"`
	Memo *string `json:"memo"`
}

// favouriteRequest is shared by the author and genre favourite toggles.
type favouriteRequest struct {
	Favourite *bool `json:"favourite" binding:"required"`
}

// List handles GET /api/authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := observe.Get(c.Request.Context(), ac.list.Execute)
	if err != nil {
		respondAppError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, authors)
}

// Create handles POST /api/authors
// Saving an author whose name and memo already exist returns the same id.
func (ac *AuthorsController) Create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	id, err := ac.create.Execute(c.Request.Context(), models.AuthorInput{Name: name, Memo: req.Memo})
	if err != nil {
		respondAppError(c, err, "create author")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

// Rename handles PUT /api/authors/:id
// Responds with the new id; books written by the author move with it.
func (ac *AuthorsController) Rename(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondBadRequest(c, "name is required")
		return
	}

	in := models.AuthorInput{Name: strings.TrimSpace(req.Name), Memo: req.Memo}
	id, err := ac.rename.Execute(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondAppError(c, err, "rename author")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// SetFavourite handles PUT /api/authors/:id/favourite
func (ac *AuthorsController) SetFavourite(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "favourite is required")
		return
	}

	if err := ac.favourite.Execute(c.Request.Context(), c.Param("id"), *req.Favourite); err != nil {
		respondAppError(c, err, "set author favourite")
		return
	}
	respondSuccess(c, "author updated")
}
