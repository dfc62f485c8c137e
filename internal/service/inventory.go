package service

import (
	"context"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	book := model.Book{
		AuthorID:      req.AuthorID,
		PublisherID:   req.PublisherID,
		Title:         req.Title,
		Year:          req.Year,
		ISBN:          req.ISBN,
		Synopsis:      req.Synopsis,
		Activated:     true,
		Available:     true,
		BookItemTotal: req.BookItemTotal,
		CategoryIDs:   req.CategoryIDs,
	}
	if req.Activated != nil {
		book.Activated = *req.Activated
	}
	if req.Available != nil {
		book.Available = *req.Available
	}
	return s.repo.CreateBook(ctx, book)
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context, req model.ListBooksRequest) (model.ListBooks, error) {
	return s.repo.ListBooks(ctx, req)
}

func (s *Service) UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, id, req)
}

func (s *Service) DeleteBook(ctx context.Context, id int) error {
	return s.repo.DeleteBook(ctx, id)
}

func (s *Service) CreateBookItem(ctx context.Context, req model.CreateBookItemRequest) (model.BookItem, error) {
	item := model.BookItem{
		BookID:    req.BookID,
		Available: true,
		Comments:  req.Comments,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	return s.repo.CreateBookItem(ctx, item)
}

func (s *Service) GetBookItem(ctx context.Context, id int) (model.BookItemDetail, error) {
	item, err := s.repo.GetBookItem(ctx, id)
	if err != nil {
		return model.BookItemDetail{}, err
	}
	item.Status = item.DeriveStatus(s.today())
	return item, nil
}

func (s *Service) ListBookItems(ctx context.Context, req model.ListBookItemsRequest) (model.ListBookItems, error) {
	return s.repo.ListBookItems(ctx, req, s.today())
}

func (s *Service) UpdateBookItem(ctx context.Context, id int, req model.UpdateBookItemRequest) (model.BookItem, error) {
	return s.repo.UpdateBookItem(ctx, id, req)
}

func (s *Service) DeleteBookItem(ctx context.Context, id int) error {
	return s.repo.DeleteBookItem(ctx, id)
}
