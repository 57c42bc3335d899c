package books

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/findar/bookstore/pkg/errcodes"
	"github.com/findar/bookstore/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func duplicateBook(id int64) error {
	return errcodes.Duplicate(fmt.Sprintf(
		"Book with id:%d is already registered. Use the restock operation to add copies or the update operation to change it.", id,
	))
}

func bookNotFound(id int64) error {
	return errcodes.NotFound(fmt.Sprintf("Book with id:%d", id))
}

// isUniqueViolation matches the UNIQUE constraint error shapes of both SQLite
// drivers that may back sqliteshim.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "SQLITE_CONSTRAINT")
}

// RegisterBook persists a new book under a caller-chosen id. The existence
// check and the insert run in one transaction so concurrent registrations of
// the same id cannot both succeed; the primary key backs this up, and a
// constraint violation surfaces as the same conflict.
func (svc *Service) RegisterBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("b.id = ?", book.ID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return duplicateBook(book.ID)
		}

		_, err = tx.NewInsert().
			Model(book).
			Exec(ctx)
		if err != nil {
			if isUniqueViolation(err) {
				return duplicateBook(book.ID)
			}
			return errors.WithStack(err)
		}
		return nil
	})
}

// Restock adds quantity to the book's total count in a single UPDATE, so
// concurrent restocks can't lose increments. The quantity may be negative;
// stock corrections are the caller's business.
func (svc *Service) Restock(ctx context.Context, id int64, quantity int) error {
	result, err := svc.db.
		NewUpdate().
		Model((*models.Book)(nil)).
		Set("total_count = total_count + ?", quantity).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFoundWithHint(
			fmt.Sprintf("Book with id:%d", id),
			"Use the register operation to add it first.",
		)
	}
	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, id int64) (*models.Book, error) {
	book := &models.Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookNotFound(id)
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book

	err := svc.db.
		NewSelect().
		Model(&books).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}

// CountByID returns the book's total count, or 0 when no book has that id.
// Absence is not an error here.
func (svc *Service) CountByID(ctx context.Context, id int64) (int, error) {
	var count int

	err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Column("b.total_count").
		Where("b.id = ?", id).
		Scan(ctx, &count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// UpdateBook replaces the whole record for book.ID. The book must already be
// registered; a vanished row comes back as not found rather than an upsert.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book) error {
	book.UpdatedAt = time.Now()

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model(book).
			WherePK().
			ExcludeColumn("created_at").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}
		if n == 0 {
			return bookNotFound(book.ID)
		}
		return nil
	})
}

// SearchByCategoryAndKeyword filters to one category and matches the
// lower-cased keyword as a substring of the title, the id rendered as text,
// or the lower-cased author. instr() keeps the title and id matches
// case-sensitive; LIKE would fold ASCII case on all three. An empty keyword
// matches every book in the category.
func (svc *Service) SearchByCategoryAndKeyword(ctx context.Context, keyword string, category models.Category) ([]*models.Book, error) {
	var books []*models.Book

	q := svc.db.
		NewSelect().
		Model(&books).
		Where("b.category = ?", category).
		Order("b.id ASC")

	if keyword != "" {
		kw := strings.ToLower(keyword)
		q = q.Where(
			"(instr(b.title, ?) > 0 OR instr(CAST(b.id AS TEXT), ?) > 0 OR instr(lower(b.author), ?) > 0)",
			kw, kw, kw,
		)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return books, nil
}
