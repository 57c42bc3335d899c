package categories

import (
	"net/http"
	"strconv"

	"github.com/findar/bookstore/pkg/errcodes"
	"github.com/findar/bookstore/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct{}

type categoryResponse struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

func (h *handler) list(c echo.Context) error {
	cats := models.Categories()
	response := make([]categoryResponse, len(cats))
	for i, cat := range cats {
		response[i] = categoryResponse{Name: cat.String(), Code: cat.Code()}
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		return errcodes.NotFound("Category")
	}

	cat, ok := models.CategoryFromCode(code)
	if !ok {
		return errcodes.NotFound("Category")
	}

	response := categoryResponse{Name: cat.String(), Code: cat.Code()}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}
