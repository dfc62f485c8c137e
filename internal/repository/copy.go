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

const bookItemColumns = `id, book_id, available, comments, last_history_item_id,
	last_reader_id, last_date_taken, last_date_due, last_date_returned`

const bookItemDetailColumns = `i.id, i.book_id, i.available, i.comments,
	i.last_history_item_id, i.last_reader_id, i.last_date_taken, i.last_date_due,
	i.last_date_returned, b.title as book_title, b.available as book_available,
	b.book_item_total, b.book_item_unavailable`

// CreateBookItem registers a copy and bumps the owning book's total; a
// copy registered as unavailable also counts against the unavailable
// counter.
func (r *repository) CreateBookItem(ctx context.Context, item model.BookItem) (model.BookItem, error) {
	var created model.BookItem
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockBooks(ctx, tx, item.BookID); err != nil {
			return err
		}
		q, args, err := qb.Insert(bookItemTableName).
			Columns("book_id", "available", "comments").
			Values(item.BookID, item.Available, item.Comments).
			Suffix("returning " + bookItemColumns).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &created, q, args...); err != nil {
			r.log.Error("CreateBookItem", zap.String("q", q), zap.Any("args", args))
			return wrapPgErr(err)
		}
		if err := incBookItemTotal(ctx, tx, item.BookID, 1); err != nil {
			return err
		}
		if !created.Available {
			return incBookItemUnavailable(ctx, tx, item.BookID, 1)
		}
		return nil
	})
	if err != nil {
		return model.BookItem{}, err
	}
	return created, nil
}

func (r *repository) GetBookItem(ctx context.Context, id int) (model.BookItemDetail, error) {
	q := `select ` + bookItemDetailColumns + `
	from book_items i
	join books b on b.id = i.book_id
	where i.id = $1`
	var item model.BookItemDetail
	if err := r.db.GetContext(ctx, &item, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookItemDetail{}, errs.ErrNotFound
		}
		return model.BookItemDetail{}, err
	}
	return item, nil
}

// copyStatusFilter rebuilds the availability list filters: the effective
// availability of a copy is derived from the owning book's flags and
// counters plus the copy's own flag and loan snapshot.
func copyStatusFilter(status model.CopyStatus, today model.Date) sq.Sqlizer {
	onLoan := sq.And{
		sq.Expr("i.last_history_item_id is not null"),
		sq.Expr("i.last_date_returned is null"),
	}
	switch status {
	case model.CopyAvailable:
		return sq.And{
			sq.Eq{"b.available": true},
			sq.Eq{"i.available": true},
			sq.Expr("b.book_item_total > b.book_item_unavailable"),
			sq.Or{
				sq.Expr("i.last_history_item_id is null"),
				sq.Expr("i.last_date_returned is not null"),
			},
		}
	case model.CopyUnavailable:
		return sq.Or{
			sq.Eq{"b.available": false},
			sq.Eq{"i.available": false},
			sq.Expr("b.book_item_total = b.book_item_unavailable"),
			onLoan,
		}
	case model.CopyBorrowed:
		return onLoan
	case model.CopyPending:
		return append(onLoan, sq.Lt{"i.last_date_due": today})
	default:
		return nil
	}
}

func (r *repository) ListBookItems(ctx context.Context, req model.ListBookItemsRequest, today model.Date) (model.ListBookItems, error) {
	q := qb.Select(bookItemDetailColumns).
		From(bookItemTableName + " i").
		Join(bookTableName + " b on b.id = i.book_id").
		OrderBy("i.id")

	if req.BookID != 0 {
		q = q.Where(sq.Eq{"i.book_id": req.BookID})
	}
	if filter := copyStatusFilter(req.Status, today); filter != nil {
		q = q.Where(filter)
	}
	if req.Page != 0 && req.Size != 0 {
		q = q.Limit(uint64(req.Size)).Offset(uint64((req.Page - 1) * req.Size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBookItems{}, err
	}
	r.log.Debug("ListBookItems", zap.String("query", query), zap.Any("args", args))

	var items []model.BookItemDetail
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return model.ListBookItems{}, err
	}
	for i := range items {
		items[i].Status = items[i].DeriveStatus(today)
	}

	return model.ListBookItems{
		Paging: model.Paging{
			Page:          req.Page,
			PageSize:      req.Size,
			TotalElements: len(items),
		},
		Items: items,
	}, nil
}

// UpdateBookItem moves the copy's unit of book_item_total if its owner
// changed, and shifts the owner's unavailable counter if the copy's
// availability flag flipped. Deltas are computed against the row as it
// was at load time, under a row lock.
func (r *repository) UpdateBookItem(ctx context.Context, id int, req model.UpdateBookItemRequest) (model.BookItem, error) {
	var updated model.BookItem
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var orig model.BookItem
		q := `select ` + bookItemColumns + ` from book_items where id = $1 for update`
		if err := tx.GetContext(ctx, &orig, q, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}

		upd := orig
		if req.BookID != nil {
			upd.BookID = *req.BookID
		}
		if req.Available != nil {
			upd.Available = *req.Available
		}
		if req.Comments != nil {
			upd.Comments = *req.Comments
		}

		if err := lockBooks(ctx, tx, orig.BookID, upd.BookID); err != nil {
			return err
		}

		if upd.BookID != orig.BookID {
			if err := incBookItemTotal(ctx, tx, orig.BookID, -1); err != nil {
				return err
			}
			if err := incBookItemTotal(ctx, tx, upd.BookID, 1); err != nil {
				return err
			}
		}
		if upd.Available != orig.Available {
			delta := 1
			if upd.Available {
				delta = -1
			}
			if err := incBookItemUnavailable(ctx, tx, upd.BookID, delta); err != nil {
				return err
			}
		}

		uq, args, err := qb.Update(bookItemTableName).
			Set("book_id", upd.BookID).
			Set("available", upd.Available).
			Set("comments", upd.Comments).
			Where(sq.Eq{"id": id}).
			Suffix("returning " + bookItemColumns).
			ToSql()
		if err != nil {
			return err
		}
		return wrapPgErr(tx.GetContext(ctx, &updated, uq, args...))
	})
	if err != nil {
		return model.BookItem{}, err
	}
	return updated, nil
}

// DeleteBookItem removes the copy and gives back its unit of
// book_item_total, never driving the counter negative.
func (r *repository) DeleteBookItem(ctx context.Context, id int) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		var orig model.BookItem
		q := `select ` + bookItemColumns + ` from book_items where id = $1 for update`
		if err := tx.GetContext(ctx, &orig, q, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}
		if err := lockBooks(ctx, tx, orig.BookID); err != nil {
			return err
		}
		if err := incBookItemTotal(ctx, tx, orig.BookID, -1); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `delete from book_items where id = $1`, id); err != nil {
			return wrapPgErr(err)
		}
		return nil
	})
}
