package repository

import (
	"context"
	"database/sql"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

const historyItemColumns = `id, book_item_id, reader_id, date_taken, date_due,
	date_returned, fine, daily_fine, is_fine_paid`

// loanState is the slice of a loan that drives the unavailable counter:
// which copy it sits on and whether it is still open.
type loanState struct {
	bookItemID int
	open       bool
}

// counterDelta is a pending adjustment of book_item_unavailable on the
// book owning the given copy.
type counterDelta struct {
	bookItemID int
	delta      int
}

// unavailableDeltas reconstructs the counter adjustments for a loan edit
// from its original and updated state. An open loan that moved between
// copies takes its unit of unavailability with it; a change of the
// returned status adds or removes one unit on the loan's copy.
func unavailableDeltas(orig, upd loanState) []counterDelta {
	var deltas []counterDelta
	if orig.bookItemID != upd.bookItemID {
		if orig.open {
			deltas = append(deltas, counterDelta{bookItemID: orig.bookItemID, delta: -1})
		}
		if upd.open {
			deltas = append(deltas, counterDelta{bookItemID: upd.bookItemID, delta: 1})
		}
		return deltas
	}
	if orig.open != upd.open {
		delta := 1
		if orig.open {
			delta = -1
		}
		deltas = append(deltas, counterDelta{bookItemID: upd.bookItemID, delta: delta})
	}
	return deltas
}

// lockBookItem takes a row lock on a copy and returns it.
func lockBookItem(ctx context.Context, tx *sqlx.Tx, id int) (model.BookItem, error) {
	var item model.BookItem
	q := `select ` + bookItemColumns + ` from book_items where id = $1 for update`
	if err := tx.GetContext(ctx, &item, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookItem{}, errs.ErrNotFound
		}
		return model.BookItem{}, err
	}
	return item, nil
}

// setBookItemSnapshot writes a loan into a copy's last-loan snapshot, or
// clears the snapshot to all-null when loan is nil.
func setBookItemSnapshot(ctx context.Context, tx *sqlx.Tx, bookItemID int, loan *model.HistoryItem) error {
	q := `
update book_items
	set last_history_item_id = $2,
		last_reader_id = $3,
		last_date_taken = $4,
		last_date_due = $5,
		last_date_returned = $6
where id = $1`
	if loan == nil {
		_, err := tx.ExecContext(ctx, q, bookItemID, nil, nil, nil, nil, nil)
		return err
	}
	_, err := tx.ExecContext(ctx, q, bookItemID,
		loan.ID, loan.ReaderID, loan.DateTaken, loan.DateDue, loan.DateReturned)
	return err
}

// recomputeSnapshot rebuilds a copy's snapshot from its most recent
// remaining loan, excluding excludeID. Most recent means the maximum
// date_taken, ties broken by the highest id.
func recomputeSnapshot(ctx context.Context, tx *sqlx.Tx, bookItemID, excludeID int) error {
	q := `
select ` + historyItemColumns + `
from history_items
where book_item_id = $1 and id <> $2
order by date_taken desc, id desc
limit 1`
	var last model.HistoryItem
	if err := tx.GetContext(ctx, &last, q, bookItemID, excludeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return setBookItemSnapshot(ctx, tx, bookItemID, nil)
		}
		return err
	}
	return setBookItemSnapshot(ctx, tx, bookItemID, &last)
}

// applyDeltas resolves copy-keyed deltas to their owning books, locks the
// book rows and applies the counter adjustments.
func applyDeltas(ctx context.Context, tx *sqlx.Tx, items map[int]model.BookItem, deltas []counterDelta) error {
	bookIDs := make([]int, 0, len(deltas))
	for _, d := range deltas {
		bookIDs = append(bookIDs, items[d.bookItemID].BookID)
	}
	if err := lockBooks(ctx, tx, bookIDs...); err != nil {
		return err
	}
	for _, d := range deltas {
		if err := incBookItemUnavailable(ctx, tx, items[d.bookItemID].BookID, d.delta); err != nil {
			return err
		}
	}
	return nil
}

// CreateHistoryItem checks a copy out. The new loan unconditionally
// becomes the copy's last-loan snapshot, and an open loan claims one unit
// of the book's unavailable counter. A copy whose snapshot already shows
// an open loan cannot be checked out again.
func (r *repository) CreateHistoryItem(ctx context.Context, loan model.HistoryItem) (model.HistoryItem, error) {
	var created model.HistoryItem
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		item, err := lockBookItem(ctx, tx, loan.BookItemID)
		if err != nil {
			return err
		}
		if item.OnLoan() {
			return errs.ErrBookItemBorrowed
		}

		q, args, err := qb.Insert(historyItemTableName).
			Columns("book_item_id", "reader_id", "date_taken", "date_due",
				"date_returned", "fine", "daily_fine", "is_fine_paid").
			Values(loan.BookItemID, loan.ReaderID, loan.DateTaken, loan.DateDue,
				loan.DateReturned, loan.Fine, loan.DailyFine, loan.IsFinePaid).
			Suffix("returning " + historyItemColumns).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &created, q, args...); err != nil {
			r.log.Error("CreateHistoryItem", zap.String("q", q), zap.Any("args", args))
			return wrapPgErr(err)
		}

		if err := setBookItemSnapshot(ctx, tx, created.BookItemID, &created); err != nil {
			return err
		}
		if created.Open() {
			return applyDeltas(ctx, tx, map[int]model.BookItem{item.ID: item},
				[]counterDelta{{bookItemID: item.ID, delta: 1}})
		}
		return nil
	})
	if err != nil {
		return model.HistoryItem{}, err
	}
	return created, nil
}

func (r *repository) GetHistoryItem(ctx context.Context, id int) (model.HistoryItem, error) {
	q, args, err := qb.Select(historyItemColumns).
		From(historyItemTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.HistoryItem{}, err
	}
	var loan model.HistoryItem
	if err := r.db.GetContext(ctx, &loan, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.HistoryItem{}, errs.ErrNotFound
		}
		return model.HistoryItem{}, err
	}
	return loan, nil
}

func (r *repository) ListHistoryItems(ctx context.Context, req model.ListHistoryItemsRequest, today model.Date) (model.ListHistoryItems, error) {
	q := qb.Select(historyItemColumns).
		From(historyItemTableName).
		OrderBy("date_taken desc", "id desc")

	if req.ReaderID != 0 {
		q = q.Where(sq.Eq{"reader_id": req.ReaderID})
	}
	switch req.Status {
	case model.LoanReturned:
		q = q.Where(sq.Expr("date_returned is not null"))
	case model.LoanBorrowed:
		q = q.Where(sq.Expr("date_returned is null"))
	case model.LoanPending:
		q = q.Where(sq.Expr("date_returned is null")).
			Where(sq.Lt{"date_due": today})
	}
	if req.Page != 0 && req.Size != 0 {
		q = q.Limit(uint64(req.Size)).Offset(uint64((req.Page - 1) * req.Size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListHistoryItems{}, err
	}

	var items []model.HistoryItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return model.ListHistoryItems{}, err
	}

	return model.ListHistoryItems{
		Paging: model.Paging{
			Page:          req.Page,
			PageSize:      req.Size,
			TotalElements: len(items),
		},
		Items: items,
	}, nil
}

// UpdateHistoryItem persists an edited loan and re-synchronizes both the
// unavailable counters and the copy snapshots it touches. upd must carry
// the full new state of the loan, fine already recomputed.
func (r *repository) UpdateHistoryItem(ctx context.Context, id int, upd model.HistoryItem) (model.HistoryItem, error) {
	var updated model.HistoryItem
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var orig model.HistoryItem
		q := `select ` + historyItemColumns + ` from history_items where id = $1 for update`
		if err := tx.GetContext(ctx, &orig, q, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}

		items, err := lockBookItems(ctx, tx, orig.BookItemID, upd.BookItemID)
		if err != nil {
			return err
		}

		deltas := unavailableDeltas(
			loanState{bookItemID: orig.BookItemID, open: orig.Open()},
			loanState{bookItemID: upd.BookItemID, open: upd.Open()},
		)
		if err := applyDeltas(ctx, tx, items, deltas); err != nil {
			return err
		}

		uq, args, err := qb.Update(historyItemTableName).
			Set("book_item_id", upd.BookItemID).
			Set("reader_id", upd.ReaderID).
			Set("date_taken", upd.DateTaken).
			Set("date_due", upd.DateDue).
			Set("date_returned", upd.DateReturned).
			Set("fine", upd.Fine).
			Set("daily_fine", upd.DailyFine).
			Set("is_fine_paid", upd.IsFinePaid).
			Where(sq.Eq{"id": id}).
			Suffix("returning " + historyItemColumns).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &updated, uq, args...); err != nil {
			return wrapPgErr(err)
		}

		origItem := items[orig.BookItemID]
		if origItem.LastHistoryItemID != nil && *origItem.LastHistoryItemID == id {
			if upd.BookItemID != orig.BookItemID {
				if err := recomputeSnapshot(ctx, tx, orig.BookItemID, id); err != nil {
					return err
				}
			}
			return setBookItemSnapshot(ctx, tx, updated.BookItemID, &updated)
		}
		return nil
	})
	if err != nil {
		return model.HistoryItem{}, err
	}
	return updated, nil
}

// lockBookItems locks the given copies in ascending id order and returns
// them keyed by id.
func lockBookItems(ctx context.Context, tx *sqlx.Tx, ids ...int) (map[int]model.BookItem, error) {
	items := make(map[int]model.BookItem, len(ids))
	ordered := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := items[id]; ok {
			continue
		}
		items[id] = model.BookItem{}
		ordered = append(ordered, id)
	}
	sort.Ints(ordered)
	for _, id := range ordered {
		item, err := lockBookItem(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		items[id] = item
	}
	return items, nil
}

// DeleteHistoryItem removes a loan. An open loan gives back its unit of
// the unavailable counter, and a loan that was its copy's snapshot source
// has the snapshot recomputed from the remaining loans before the row
// goes away.
func (r *repository) DeleteHistoryItem(ctx context.Context, id int) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		var orig model.HistoryItem
		q := `select ` + historyItemColumns + ` from history_items where id = $1 for update`
		if err := tx.GetContext(ctx, &orig, q, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.ErrNotFound
			}
			return err
		}
		item, err := lockBookItem(ctx, tx, orig.BookItemID)
		if err != nil {
			return err
		}

		if orig.Open() {
			if err := applyDeltas(ctx, tx, map[int]model.BookItem{item.ID: item},
				[]counterDelta{{bookItemID: item.ID, delta: -1}}); err != nil {
				return err
			}
		}
		if item.LastHistoryItemID != nil && *item.LastHistoryItemID == id {
			if err := recomputeSnapshot(ctx, tx, item.ID, id); err != nil {
				return err
			}
		}
		_, err = tx.ExecContext(ctx, `delete from history_items where id = $1`, id)
		return err
	})
}
