package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

const bookColumns = `id, author_id, publisher_id, title, year, isbn, synopsis,
	activated, available, book_item_total, book_item_unavailable`

// CreateBook inserts the book and auto-provisions BookItemTotal copies in
// the same transaction.
func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	var created model.Book
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		q, args, err := qb.Insert(bookTableName).
			Columns("author_id", "publisher_id", "title", "year", "isbn", "synopsis",
				"activated", "available", "book_item_total").
			Values(book.AuthorID, book.PublisherID, book.Title, book.Year, book.ISBN,
				book.Synopsis, book.Activated, book.Available, book.BookItemTotal).
			Suffix("returning " + bookColumns).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &created, q, args...); err != nil {
			r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args))
			return wrapPgErr(err)
		}
		if err := setBookCategories(ctx, tx, created.ID, book.CategoryIDs); err != nil {
			return err
		}
		created.CategoryIDs = book.CategoryIDs
		return bulkCreateBookItems(ctx, tx, created.ID, created.BookItemTotal)
	})
	if err != nil {
		return model.Book{}, err
	}
	return created, nil
}

// bulkCreateBookItems inserts n blank copies for a book. The owning
// book's total is assumed to be set by the caller within the same tx.
func bulkCreateBookItems(ctx context.Context, tx *sqlx.Tx, bookID, n int) error {
	if n <= 0 {
		return nil
	}
	ins := qb.Insert(bookItemTableName).Columns("book_id")
	for i := 0; i < n; i++ {
		ins = ins.Values(bookID)
	}
	q, args, err := ins.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, q, args...)
	return err
}

// setBookCategories replaces a book's category set inside the caller's tx.
func setBookCategories(ctx context.Context, tx *sqlx.Tx, bookID int, categoryIDs []int) error {
	if _, err := tx.ExecContext(ctx, `delete from book_categories where book_id = $1`, bookID); err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	ins := qb.Insert(bookCategoryTableName).Columns("book_id", "category_id")
	for _, categoryID := range categoryIDs {
		ins = ins.Values(bookID, categoryID)
	}
	q, args, err := ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return wrapPgErr(err)
	}
	return nil
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	q, args, err := qb.Select(bookColumns).
		From(bookTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	if err := r.db.SelectContext(ctx, &book.CategoryIDs,
		`select category_id from book_categories where book_id = $1 order by category_id`, id); err != nil {
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, req model.ListBooksRequest) (model.ListBooks, error) {
	q := qb.Select("b.id", "b.author_id", "b.publisher_id", "b.title", "b.year",
		"b.isbn", "b.synopsis", "b.activated", "b.available",
		"b.book_item_total", "b.book_item_unavailable").
		From(bookTableName + " b").
		Join(authorTableName + " a on a.id = b.author_id").
		Where(sq.Eq{"b.activated": true}).
		OrderBy("b.title", "b.id")

	if req.Title != "" {
		q = q.Where(sq.ILike{"b.title": "%" + req.Title + "%"})
	}
	if req.Author != "" {
		q = q.Where(sq.ILike{"a.name": "%" + req.Author + "%"})
	}
	if req.CategoryID != 0 {
		q = q.Where(sq.Expr(
			"exists (select 1 from book_categories bc where bc.book_id = b.id and bc.category_id = ?)",
			req.CategoryID))
	}
	if req.Page != 0 && req.Size != 0 {
		q = q.Limit(uint64(req.Size)).Offset(uint64((req.Page - 1) * req.Size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return model.ListBooks{}, err
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          req.Page,
			PageSize:      req.Size,
			TotalElements: len(books),
		},
		Items: books,
	}, nil
}

// UpdateBook applies a partial edit. BookItemTotal may grow, in which case
// the missing copies are auto-provisioned, but it can never be reduced
// through this path: copies are deleted one by one instead.
func (r *repository) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	var updated model.Book
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var orig model.Book
		q := `select ` + bookColumns + ` from books where id = $1 for update`
		if err := tx.GetContext(ctx, &orig, q, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}

		upd := orig
		if req.AuthorID != nil {
			upd.AuthorID = *req.AuthorID
		}
		if req.PublisherID != nil {
			upd.PublisherID = *req.PublisherID
		}
		if req.Title != nil {
			upd.Title = *req.Title
		}
		if req.Year != nil {
			upd.Year = req.Year
		}
		if req.ISBN != nil {
			upd.ISBN = *req.ISBN
		}
		if req.Synopsis != nil {
			upd.Synopsis = *req.Synopsis
		}
		if req.Activated != nil {
			upd.Activated = *req.Activated
		}
		if req.Available != nil {
			upd.Available = *req.Available
		}
		if req.BookItemTotal != nil {
			if *req.BookItemTotal < orig.BookItemTotal {
				return errs.ErrBookItemTotalReduced
			}
			upd.BookItemTotal = *req.BookItemTotal
		}

		uq, args, err := qb.Update(bookTableName).
			Set("author_id", upd.AuthorID).
			Set("publisher_id", upd.PublisherID).
			Set("title", upd.Title).
			Set("year", upd.Year).
			Set("isbn", upd.ISBN).
			Set("synopsis", upd.Synopsis).
			Set("activated", upd.Activated).
			Set("available", upd.Available).
			Set("book_item_total", upd.BookItemTotal).
			Where(sq.Eq{"id": id}).
			Suffix("returning " + bookColumns).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &updated, uq, args...); err != nil {
			return wrapPgErr(err)
		}

		if req.CategoryIDs != nil {
			if err := setBookCategories(ctx, tx, id, *req.CategoryIDs); err != nil {
				return err
			}
		}
		if err := tx.SelectContext(ctx, &updated.CategoryIDs,
			`select category_id from book_categories where book_id = $1 order by category_id`, id); err != nil {
			return err
		}

		return bulkCreateBookItems(ctx, tx, id, upd.BookItemTotal-orig.BookItemTotal)
	})
	if err != nil {
		return model.Book{}, err
	}
	return updated, nil
}

func (r *repository) DeleteBook(ctx context.Context, id int) error {
	q, args, err := qb.Delete(bookTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return wrapPgErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
