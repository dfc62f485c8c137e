package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

type Repository interface {
	CreateAuthor(ctx context.Context, name string) (model.Author, error)
	GetAuthor(ctx context.Context, id int) (model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	DeleteAuthor(ctx context.Context, id int) error

	CreatePublisher(ctx context.Context, name string) (model.Publisher, error)
	GetPublisher(ctx context.Context, id int) (model.Publisher, error)
	ListPublishers(ctx context.Context) ([]model.Publisher, error)
	DeletePublisher(ctx context.Context, id int) error

	CreateCategory(ctx context.Context, name, slug string) (model.Category, error)
	GetCategory(ctx context.Context, id int) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	ListBooks(ctx context.Context, req model.ListBooksRequest) (model.ListBooks, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error

	CreateBookItem(ctx context.Context, item model.BookItem) (model.BookItem, error)
	GetBookItem(ctx context.Context, id int) (model.BookItemDetail, error)
	ListBookItems(ctx context.Context, req model.ListBookItemsRequest, today model.Date) (model.ListBookItems, error)
	UpdateBookItem(ctx context.Context, id int, req model.UpdateBookItemRequest) (model.BookItem, error)
	DeleteBookItem(ctx context.Context, id int) error

	CreateHistoryItem(ctx context.Context, loan model.HistoryItem) (model.HistoryItem, error)
	GetHistoryItem(ctx context.Context, id int) (model.HistoryItem, error)
	ListHistoryItems(ctx context.Context, req model.ListHistoryItemsRequest, today model.Date) (model.ListHistoryItems, error)
	UpdateHistoryItem(ctx context.Context, id int, loan model.HistoryItem) (model.HistoryItem, error)
	DeleteHistoryItem(ctx context.Context, id int) error

	CreateReader(ctx context.Context, acc model.Account, phone, address string) (model.Reader, error)
	GetReader(ctx context.Context, id int) (model.Reader, error)
	ListReaders(ctx context.Context) ([]model.Reader, error)
	ReaderLoans(ctx context.Context, readerID int) (model.ReaderLoans, error)

	GetAccountByUsername(ctx context.Context, username string) (model.Account, error)
	UpdateAccountPassword(ctx context.Context, id int, passwordHash string) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	accountTableName      = `accounts`
	readerTableName       = `readers`
	authorTableName       = `authors`
	publisherTableName    = `publishers`
	categoryTableName     = `categories`
	bookTableName         = `books`
	bookCategoryTableName = `book_categories`
	bookItemTableName     = `book_items`
	historyItemTableName  = `history_items`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// inTx runs fn in a single transaction; any error rolls the whole
// operation back so counters and rows never diverge.
func (r *repository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Error("rollback", zap.Error(rbErr))
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

// incBookItemTotal shifts a book's copy total by delta, clamped at zero.
func incBookItemTotal(ctx context.Context, tx *sqlx.Tx, bookID, delta int) error {
	q := `
update books
	set book_item_total = greatest(0, book_item_total + $2)
where id = $1`
	_, err := tx.ExecContext(ctx, q, bookID, delta)
	return err
}

// incBookItemUnavailable shifts a book's unavailable counter by delta,
// clamped at zero.
func incBookItemUnavailable(ctx context.Context, tx *sqlx.Tx, bookID, delta int) error {
	q := `
update books
	set book_item_unavailable = greatest(0, book_item_unavailable + $2)
where id = $1`
	_, err := tx.ExecContext(ctx, q, bookID, delta)
	return err
}

// lockBooks takes row locks on the given books in ascending id order so
// concurrent multi-book updates cannot deadlock.
func lockBooks(ctx context.Context, tx *sqlx.Tx, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q := `select id from books where id = any($1) order by id for update`
	_, err := tx.ExecContext(ctx, q, ids)
	return err
}

// wrapPgErr maps Postgres constraint violations onto domain errors.
func wrapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errs.ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return errs.ErrReferenced
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}
	return err
}
