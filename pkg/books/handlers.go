package books

import (
	"net/http"
	"strconv"

	"github.com/findar/bookstore/pkg/errcodes"
	"github.com/findar/bookstore/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) register(c echo.Context) error {
	ctx := c.Request().Context()

	params := RegisterBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		ID:         *params.ID,
		Title:      params.Title,
		Author:     params.Author,
		Price:      params.Price,
		Category:   *params.Category,
		TotalCount: params.TotalCount,
	}

	if err := h.bookService.RegisterBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

// list serves both the plain listing and the category search. A keyword only
// makes sense with a category to scope it.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if params.Category == nil {
		if params.Keyword != nil {
			return errcodes.ValidationError(`"keyword" requires "category"`)
		}

		books, err := h.bookService.ListBooks(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(c.JSON(http.StatusOK, books))
	}

	category, ok := models.CategoryFromName(*params.Category)
	if !ok {
		return errcodes.ValidationError(`"category" must be a known category name`)
	}

	keyword := ""
	if params.Keyword != nil {
		keyword = *params.Keyword
	}

	books, err := h.bookService.SearchByCategoryAndKeyword(ctx, keyword, category)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) count(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errcodes.NotFound("Book")
	}

	count, err := h.bookService.CountByID(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"id":          id,
		"total_count": count,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) restock(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := RestockPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookService.Restock(ctx, id, *params.Quantity); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// An omitted id and a matching id behave the same; only a differing id is
	// rejected.
	if params.ID != nil && *params.ID != id {
		return errcodes.BadRequest("Id cannot be updated.")
	}

	book := &models.Book{
		ID:         id,
		Title:      params.Title,
		Author:     params.Author,
		Price:      params.Price,
		Category:   *params.Category,
		TotalCount: params.TotalCount,
	}

	if err := h.bookService.UpdateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	book, err = h.bookService.RetrieveBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
