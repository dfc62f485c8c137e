package handler

import (
	"context"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/fabiopiovam/dj-la-library-system/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CatalogService   = (*service.Service)(nil)
	_ InventoryService = (*service.Service)(nil)
	_ LoanService      = (*service.Service)(nil)
	_ ReaderService    = (*service.Service)(nil)
	_ AuthService      = (*service.Service)(nil)
)

type CatalogService interface {
	CreateAuthor(ctx context.Context, name string) (model.Author, error)
	GetAuthor(ctx context.Context, id int) (model.Author, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	DeleteAuthor(ctx context.Context, id int) error

	CreatePublisher(ctx context.Context, name string) (model.Publisher, error)
	GetPublisher(ctx context.Context, id int) (model.Publisher, error)
	ListPublishers(ctx context.Context) ([]model.Publisher, error)
	DeletePublisher(ctx context.Context, id int) error

	CreateCategory(ctx context.Context, name string) (model.Category, error)
	GetCategory(ctx context.Context, id int) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type InventoryService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	ListBooks(ctx context.Context, req model.ListBooksRequest) (model.ListBooks, error)
	UpdateBook(ctx context.Context, id int, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error

	CreateBookItem(ctx context.Context, req model.CreateBookItemRequest) (model.BookItem, error)
	GetBookItem(ctx context.Context, id int) (model.BookItemDetail, error)
	ListBookItems(ctx context.Context, req model.ListBookItemsRequest) (model.ListBookItems, error)
	UpdateBookItem(ctx context.Context, id int, req model.UpdateBookItemRequest) (model.BookItem, error)
	DeleteBookItem(ctx context.Context, id int) error
}

type LoanService interface {
	CreateHistoryItem(ctx context.Context, req model.CreateHistoryItemRequest) (model.HistoryItem, error)
	GetHistoryItem(ctx context.Context, id int) (model.HistoryItem, error)
	ListHistoryItems(ctx context.Context, req model.ListHistoryItemsRequest) (model.ListHistoryItems, error)
	UpdateHistoryItem(ctx context.Context, id int, req model.UpdateHistoryItemRequest) (model.HistoryItem, error)
	DeleteHistoryItem(ctx context.Context, id int) error
}

type ReaderService interface {
	CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error)
	GetReader(ctx context.Context, id int) (model.Reader, error)
	ListReaders(ctx context.Context) ([]model.Reader, error)
	ReaderLoans(ctx context.Context, readerID int) (model.ReaderLoans, error)
}

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	ChangePassword(ctx context.Context, username string, req model.ChangePasswordRequest) error
}
