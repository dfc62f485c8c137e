package service

import (
	"context"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/fabiopiovam/dj-la-library-system/pkg/auth"
)

func (s *Service) CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.Reader{}, err
	}
	acc := model.Account{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
	}
	return s.repo.CreateReader(ctx, acc, req.PhoneNumber, req.Address)
}

func (s *Service) GetReader(ctx context.Context, id int) (model.Reader, error) {
	return s.repo.GetReader(ctx, id)
}

func (s *Service) ListReaders(ctx context.Context) ([]model.Reader, error) {
	return s.repo.ListReaders(ctx)
}

func (s *Service) ReaderLoans(ctx context.Context, readerID int) (model.ReaderLoans, error) {
	return s.repo.ReaderLoans(ctx, readerID)
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	acc, err := s.repo.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}
	if !auth.CheckPassword(acc.PasswordHash, req.Password) {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}
	token, err := auth.NewToken(s.jwtSecret, auth.Profile{
		Username: acc.Username,
		IsStaff:  acc.IsStaff,
	}, s.tokenTTL)
	if err != nil {
		return model.LoginResponse{}, err
	}
	return model.LoginResponse{Token: token}, nil
}

// ChangePassword rotates the password of the authenticated account.
func (s *Service) ChangePassword(ctx context.Context, username string, req model.ChangePasswordRequest) error {
	acc, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(acc.PasswordHash, req.OldPassword) {
		return errs.ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateAccountPassword(ctx, acc.ID, hash)
}
