package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	authors := NewAuthorsController(cfg.UseCases)
	genres := NewGenresController(cfg.UseCases)
	books := NewBooksController(cfg.UseCases)
	quotes := NewQuotesController(cfg.UseCases)
	statuses := NewStatusesController(cfg.UseCases)
	stream := NewStreamController(cfg.UseCases)
	export := NewExportController(cfg.ExportQueue, cfg.UseCases.GetFilteredBooks, cfg.ExportDir)

	api := router.Group("/api")
	{
		api.GET("/authors", authors.List)
		api.POST("/authors", authors.Create)
		api.PUT("/authors/:id", authors.Rename)
		api.PUT("/authors/:id/favourite", authors.SetFavourite)

		api.GET("/genres", genres.List)
		api.POST("/genres", genres.Create)
		api.PUT("/genres/:id", genres.Rename)
		api.PUT("/genres/:id/favourite", genres.SetFavourite)

		api.GET("/books", books.List)
		api.POST("/books", books.Create)
		api.GET("/books/search", books.Search)
		api.GET("/books/:id", books.Get)
		api.PUT("/books/:id", books.Update)
		api.DELETE("/books/:id", books.Delete)
		api.GET("/books/:id/quotes", books.Quotes)

		api.GET("/quotes", quotes.List)
		api.POST("/quotes", quotes.Create)
		api.GET("/quotes/:id", quotes.Get)
		api.PUT("/quotes/:id", quotes.Update)
		api.DELETE("/quotes/:id", quotes.Delete)

		api.GET("/statuses", statuses.List)

		api.GET("/stream/books", stream.Books)

		api.POST("/export", export.Export)
		api.GET("/tasks/:id", export.TaskStatus)
	}

	return router
}
