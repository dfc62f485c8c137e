package service

import (
	"context"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/fabiopiovam/dj-la-library-system/pkg/kafka"
)

// CreateHistoryItem checks a copy out for a reader. The fine is derived
// here, never taken from the request.
func (s *Service) CreateHistoryItem(ctx context.Context, req model.CreateHistoryItemRequest) (model.HistoryItem, error) {
	today := s.today()
	loan := model.HistoryItem{
		BookItemID:   req.BookItemID,
		ReaderID:     req.ReaderID,
		DateTaken:    req.DateTaken,
		DateDue:      req.DateDue,
		DateReturned: req.DateReturned,
		DailyFine:    req.DailyFine,
	}
	loan.Fine = CalculateFine(loan.DateDue, loan.DateReturned, loan.DailyFine, today)

	created, err := s.repo.CreateHistoryItem(ctx, loan)
	if err != nil {
		return model.HistoryItem{}, err
	}
	s.publish(kafka.NewLoanEvent(kafka.LoanCheckout, created, today))
	return created, nil
}

func (s *Service) GetHistoryItem(ctx context.Context, id int) (model.HistoryItem, error) {
	return s.repo.GetHistoryItem(ctx, id)
}

func (s *Service) ListHistoryItems(ctx context.Context, req model.ListHistoryItemsRequest) (model.ListHistoryItems, error) {
	return s.repo.ListHistoryItems(ctx, req, s.today())
}

// UpdateHistoryItem merges a partial edit over the persisted loan,
// recomputes the fine and hands the full new state to the ledger.
func (s *Service) UpdateHistoryItem(ctx context.Context, id int, req model.UpdateHistoryItemRequest) (model.HistoryItem, error) {
	today := s.today()
	orig, err := s.repo.GetHistoryItem(ctx, id)
	if err != nil {
		return model.HistoryItem{}, err
	}

	upd := mergeHistoryItem(orig, req)
	upd.Fine = CalculateFine(upd.DateDue, upd.DateReturned, upd.DailyFine, today)

	updated, err := s.repo.UpdateHistoryItem(ctx, id, upd)
	if err != nil {
		return model.HistoryItem{}, err
	}

	if orig.Open() && !updated.Open() {
		s.publish(kafka.NewLoanEvent(kafka.LoanReturn, updated, today))
	} else if updated.BookItemID != orig.BookItemID {
		s.publish(kafka.NewLoanEvent(kafka.LoanTransfer, updated, today))
	}
	return updated, nil
}

func (s *Service) DeleteHistoryItem(ctx context.Context, id int) error {
	return s.repo.DeleteHistoryItem(ctx, id)
}

// mergeHistoryItem lays a partial edit over the persisted loan. Nil fields
// are left untouched; ClearDateReturned reopens the loan even when no new
// return date is sent.
func mergeHistoryItem(orig model.HistoryItem, req model.UpdateHistoryItemRequest) model.HistoryItem {
	upd := orig
	if req.BookItemID != nil {
		upd.BookItemID = *req.BookItemID
	}
	if req.ReaderID != nil {
		upd.ReaderID = *req.ReaderID
	}
	if req.DateTaken != nil {
		upd.DateTaken = *req.DateTaken
	}
	if req.DateDue != nil {
		upd.DateDue = *req.DateDue
	}
	if req.ClearDateReturned {
		upd.DateReturned = nil
	} else if req.DateReturned != nil {
		upd.DateReturned = req.DateReturned
	}
	if req.DailyFine != nil {
		upd.DailyFine = *req.DailyFine
	}
	if req.IsFinePaid != nil {
		upd.IsFinePaid = *req.IsFinePaid
	}
	return upd
}
