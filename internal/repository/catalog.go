package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func (r *repository) CreateAuthor(ctx context.Context, name string) (model.Author, error) {
	q, args, err := qb.Insert(authorTableName).
		Columns("name").Values(name).
		Suffix("returning id, name").
		ToSql()
	if err != nil {
		return model.Author{}, err
	}
	var author model.Author
	if err := r.db.GetContext(ctx, &author, q, args...); err != nil {
		return model.Author{}, wrapPgErr(err)
	}
	return author, nil
}

func (r *repository) GetAuthor(ctx context.Context, id int) (model.Author, error) {
	var author model.Author
	if err := r.db.GetContext(ctx, &author, `select id, name from authors where id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Author{}, errs.ErrNotFound
		}
		return model.Author{}, err
	}
	return author, nil
}

func (r *repository) ListAuthors(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	err := r.db.SelectContext(ctx, &authors, `select id, name from authors order by name, id`)
	return authors, err
}

func (r *repository) DeleteAuthor(ctx context.Context, id int) error {
	return r.deleteByID(ctx, authorTableName, id)
}

func (r *repository) CreatePublisher(ctx context.Context, name string) (model.Publisher, error) {
	q, args, err := qb.Insert(publisherTableName).
		Columns("name").Values(name).
		Suffix("returning id, name").
		ToSql()
	if err != nil {
		return model.Publisher{}, err
	}
	var pub model.Publisher
	if err := r.db.GetContext(ctx, &pub, q, args...); err != nil {
		return model.Publisher{}, wrapPgErr(err)
	}
	return pub, nil
}

func (r *repository) GetPublisher(ctx context.Context, id int) (model.Publisher, error) {
	var pub model.Publisher
	if err := r.db.GetContext(ctx, &pub, `select id, name from publishers where id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Publisher{}, errs.ErrNotFound
		}
		return model.Publisher{}, err
	}
	return pub, nil
}

func (r *repository) ListPublishers(ctx context.Context) ([]model.Publisher, error) {
	var pubs []model.Publisher
	err := r.db.SelectContext(ctx, &pubs, `select id, name from publishers order by name, id`)
	return pubs, err
}

func (r *repository) DeletePublisher(ctx context.Context, id int) error {
	return r.deleteByID(ctx, publisherTableName, id)
}

func (r *repository) CreateCategory(ctx context.Context, name, slug string) (model.Category, error) {
	q, args, err := qb.Insert(categoryTableName).
		Columns("name", "slug").Values(name, slug).
		Suffix("returning id, name, slug").
		ToSql()
	if err != nil {
		return model.Category{}, err
	}
	var cat model.Category
	if err := r.db.GetContext(ctx, &cat, q, args...); err != nil {
		return model.Category{}, wrapPgErr(err)
	}
	return cat, nil
}

func (r *repository) GetCategory(ctx context.Context, id int) (model.Category, error) {
	var cat model.Category
	if err := r.db.GetContext(ctx, &cat, `select id, name, slug from categories where id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Category{}, errs.ErrNotFound
		}
		return model.Category{}, err
	}
	return cat, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.SelectContext(ctx, &cats, `select id, name, slug from categories order by name, id`)
	return cats, err
}

func (r *repository) DeleteCategory(ctx context.Context, id int) error {
	return r.deleteByID(ctx, categoryTableName, id)
}

func (r *repository) deleteByID(ctx context.Context, table string, id int) error {
	q, args, err := qb.Delete(table).Where(sq.Eq{"id": id}).ToSql()
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
