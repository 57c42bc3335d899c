package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
	}

	g.GET("", h.list)
	g.POST("", h.register)
	g.GET("/:id", h.retrieve)
	g.PUT("/:id", h.update)
	g.GET("/:id/count", h.count)
	g.POST("/:id/restock", h.restock)
}
