package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

const readerColumns = `r.id, r.account_id, a.username, a.first_name, a.last_name,
	a.email, r.phone_number, r.address`

// CreateReader registers the account and the reader row together.
func (r *repository) CreateReader(ctx context.Context, acc model.Account, phone, address string) (model.Reader, error) {
	var reader model.Reader
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		q := `
insert into accounts (username, password_hash, first_name, last_name, email, is_staff)
values ($1, $2, $3, $4, $5, $6)
returning id`
		var accountID int
		if err := tx.GetContext(ctx, &accountID, q,
			acc.Username, acc.PasswordHash, acc.FirstName, acc.LastName, acc.Email, acc.IsStaff); err != nil {
			return wrapPgErr(err)
		}
		rq := `
insert into readers (account_id, phone_number, address)
values ($1, $2, $3)
returning id`
		var readerID int
		if err := tx.GetContext(ctx, &readerID, rq, accountID, phone, address); err != nil {
			return wrapPgErr(err)
		}
		reader = model.Reader{
			ID:          readerID,
			AccountID:   accountID,
			Username:    acc.Username,
			FirstName:   acc.FirstName,
			LastName:    acc.LastName,
			Email:       acc.Email,
			PhoneNumber: phone,
			Address:     address,
		}
		return nil
	})
	if err != nil {
		return model.Reader{}, err
	}
	return reader, nil
}

func (r *repository) GetReader(ctx context.Context, id int) (model.Reader, error) {
	q := `
select ` + readerColumns + `
from readers r
join accounts a on a.id = r.account_id
where r.id = $1`
	var reader model.Reader
	if err := r.db.GetContext(ctx, &reader, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reader{}, errs.ErrNotFound
		}
		return model.Reader{}, err
	}
	return reader, nil
}

func (r *repository) ListReaders(ctx context.Context) ([]model.Reader, error) {
	q := `
select ` + readerColumns + `
from readers r
join accounts a on a.id = r.account_id
order by a.username`
	var readers []model.Reader
	err := r.db.SelectContext(ctx, &readers, q)
	return readers, err
}

// ReaderLoans returns a reader's full loan history plus the sum of their
// unpaid positive fines.
func (r *repository) ReaderLoans(ctx context.Context, readerID int) (model.ReaderLoans, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`select exists (select 1 from readers where id = $1)`, readerID); err != nil {
		return model.ReaderLoans{}, err
	}
	if !exists {
		return model.ReaderLoans{}, errs.ErrNotFound
	}

	q := `
select ` + historyItemColumns + `
from history_items
where reader_id = $1
order by date_taken desc, id desc`
	var items []model.HistoryItem
	if err := r.db.SelectContext(ctx, &items, q, readerID); err != nil {
		return model.ReaderLoans{}, err
	}

	var totalFine int
	for _, item := range items {
		if item.Fine > 0 && !item.IsFinePaid {
			totalFine += item.Fine
		}
	}
	return model.ReaderLoans{Items: items, TotalFine: totalFine}, nil
}

func (r *repository) GetAccountByUsername(ctx context.Context, username string) (model.Account, error) {
	q := `
select id, username, password_hash, first_name, last_name, email, is_staff
from accounts
where username = $1`
	var acc model.Account
	if err := r.db.GetContext(ctx, &acc, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, errs.ErrNotFound
		}
		return model.Account{}, err
	}
	return acc, nil
}

func (r *repository) UpdateAccountPassword(ctx context.Context, id int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`update accounts set password_hash = $2 where id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
