package categories

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers category routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group) {
	h := &handler{}

	g.GET("", h.list)
	g.GET("/:code", h.retrieve)
}
