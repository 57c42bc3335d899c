package books

import (
	"context"
	"database/sql"
	"testing"

	"github.com/findar/bookstore/pkg/errcodes"
	"github.com/findar/bookstore/pkg/migrations"
	"github.com/findar/bookstore/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func newTestBook() *models.Book {
	return &models.Book{
		ID:         1,
		Title:      "Go Deep",
		Author:     "Ada",
		Price:      10.0,
		Category:   models.CategoryTechnology,
		TotalCount: 2,
	}
}

func TestRegisterBookAndRetrieve(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	book, err := svc.RetrieveBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)
	assert.Equal(t, "Go Deep", book.Title)
	assert.Equal(t, "Ada", book.Author)
	assert.Equal(t, 10.0, book.Price)
	assert.Equal(t, models.CategoryTechnology, book.Category)
	assert.Equal(t, 2, book.TotalCount)
	assert.False(t, book.CreatedAt.IsZero())
}

func TestRegisterBookDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	dupe := newTestBook()
	dupe.Title = "Something Else"
	err = svc.RegisterBook(ctx, dupe)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "duplicate_resource", codeErr.Code)
	assert.Contains(t, codeErr.Message, "id:1")
	assert.Contains(t, codeErr.Message, "restock")
	assert.Contains(t, codeErr.Message, "update")

	// The original record is untouched.
	book, err := svc.RetrieveBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go Deep", book.Title)
}

func TestRegisterBookStoresTotalsVerbatim(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := newTestBook()
	book.TotalCount = -3
	err := svc.RegisterBook(ctx, book)
	require.NoError(t, err)

	count, err := svc.CountByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, -3, count)
}

func TestRetrieveBookNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.RetrieveBook(context.Background(), 42)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
	assert.Contains(t, codeErr.Message, "id:42")
}

func TestRestock(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	err = svc.Restock(ctx, 1, 3)
	require.NoError(t, err)

	count, err := svc.CountByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestRestockNegativeQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	// Negative quantities are stock corrections; no floor at zero.
	err = svc.Restock(ctx, 1, -5)
	require.NoError(t, err)

	count, err := svc.CountByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, -3, count)
}

func TestRestockNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	err := svc.Restock(context.Background(), 42, 3)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
	assert.Contains(t, codeErr.Message, "id:42")
	assert.Contains(t, codeErr.Message, "register")
}

func TestListBooks(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	second := newTestBook()
	second.ID = 7
	second.Title = "Poems"
	second.Category = models.CategoryPoetry
	err = svc.RegisterBook(ctx, second)
	require.NoError(t, err)

	err = svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	books, err = svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, int64(1), books[0].ID)
	assert.Equal(t, int64(7), books[1].ID)
}

func TestCountByIDMissingBook(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	// Absence is a zero count, not an error.
	count, err := svc.CountByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateBook(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	registered, err := svc.RetrieveBook(ctx, 1)
	require.NoError(t, err)

	err = svc.UpdateBook(ctx, &models.Book{
		ID:         1,
		Title:      "Go Deeper",
		Author:     "Ada L.",
		Price:      12.5,
		Category:   models.CategoryLiterature,
		TotalCount: 9,
	})
	require.NoError(t, err)

	book, err := svc.RetrieveBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go Deeper", book.Title)
	assert.Equal(t, "Ada L.", book.Author)
	assert.Equal(t, 12.5, book.Price)
	assert.Equal(t, models.CategoryLiterature, book.Category)
	assert.Equal(t, 9, book.TotalCount)
	assert.Equal(t, registered.CreatedAt.Unix(), book.CreatedAt.Unix())
}

func TestUpdateBookNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	book := newTestBook()
	book.ID = 42
	err := svc.UpdateBook(context.Background(), book)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
	assert.Contains(t, codeErr.Message, "id:42")
}

func TestSearchByCategoryAndKeyword(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	// Keyword matches the author case-insensitively.
	books, err := svc.SearchByCategoryAndKeyword(ctx, "ada", models.CategoryTechnology)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(1), books[0].ID)

	// Same keyword, wrong category.
	books, err = svc.SearchByCategoryAndKeyword(ctx, "ada", models.CategoryFiction)
	require.NoError(t, err)
	assert.Empty(t, books)

	// Keyword matches the id rendered as text.
	books, err = svc.SearchByCategoryAndKeyword(ctx, "1", models.CategoryTechnology)
	require.NoError(t, err)
	require.Len(t, books, 1)
}

func TestSearchTitleMatchIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := newTestBook()
	book.Title = "deep dive"
	err := svc.RegisterBook(ctx, book)
	require.NoError(t, err)

	// The lowered keyword matches an already-lowercase title.
	books, err := svc.SearchByCategoryAndKeyword(ctx, "Deep", models.CategoryTechnology)
	require.NoError(t, err)
	require.Len(t, books, 1)

	// But a mixed-case title is only matched verbatim.
	second := newTestBook()
	second.ID = 2
	second.Title = "Deep Thoughts"
	second.Author = "someone"
	err = svc.RegisterBook(ctx, second)
	require.NoError(t, err)

	books, err = svc.SearchByCategoryAndKeyword(ctx, "Deep Thoughts", models.CategoryTechnology)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSearchEmptyKeyword(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.RegisterBook(ctx, newTestBook())
	require.NoError(t, err)

	second := newTestBook()
	second.ID = 2
	second.Category = models.CategoryDrama
	err = svc.RegisterBook(ctx, second)
	require.NoError(t, err)

	// Empty keyword matches everything in the category.
	books, err := svc.SearchByCategoryAndKeyword(ctx, "", models.CategoryTechnology)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(1), books[0].ID)
}
