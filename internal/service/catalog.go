package service

import (
	"context"
	"strings"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func (s *Service) CreateAuthor(ctx context.Context, name string) (model.Author, error) {
	return s.repo.CreateAuthor(ctx, name)
}

func (s *Service) GetAuthor(ctx context.Context, id int) (model.Author, error) {
	return s.repo.GetAuthor(ctx, id)
}

func (s *Service) ListAuthors(ctx context.Context) ([]model.Author, error) {
	return s.repo.ListAuthors(ctx)
}

func (s *Service) DeleteAuthor(ctx context.Context, id int) error {
	return s.repo.DeleteAuthor(ctx, id)
}

func (s *Service) CreatePublisher(ctx context.Context, name string) (model.Publisher, error) {
	return s.repo.CreatePublisher(ctx, name)
}

func (s *Service) GetPublisher(ctx context.Context, id int) (model.Publisher, error) {
	return s.repo.GetPublisher(ctx, id)
}

func (s *Service) ListPublishers(ctx context.Context) ([]model.Publisher, error) {
	return s.repo.ListPublishers(ctx)
}

func (s *Service) DeletePublisher(ctx context.Context, id int) error {
	return s.repo.DeletePublisher(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	return s.repo.CreateCategory(ctx, name, slugify(name))
}

func (s *Service) GetCategory(ctx context.Context, id int) (model.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) DeleteCategory(ctx context.Context, id int) error {
	return s.repo.DeleteCategory(ctx, id)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(slug), "-")
}
