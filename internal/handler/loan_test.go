package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	"github.com/fabiopiovam/dj-la-library-system/internal/handler"
	mock_handler "github.com/fabiopiovam/dj-la-library-system/internal/handler/mocks"
	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/fabiopiovam/dj-la-library-system/pkg/validate"
)

func newTestRouter(h *handler.Handler) *echo.Echo {
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	return e
}

func TestHandler_CreateHistoryItem(t *testing.T) {
	t.Parallel()

	type mockBehavior func(svc *mock_handler.MockLoanService)

	type response struct {
		expectedCode int
		expectedBody string
	}

	tests := []struct {
		name         string
		inputBody    string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:      "ok",
			inputBody: `{"bookItemID":2,"readerID":3,"dateTaken":"2024-01-10","dateDue":"2024-01-24","dailyFine":2}`,
			mockBehavior: func(svc *mock_handler.MockLoanService) {
				req := model.CreateHistoryItemRequest{
					BookItemID: 2,
					ReaderID:   3,
					DateTaken:  model.NewDate(2024, 1, 10),
					DateDue:    model.NewDate(2024, 1, 24),
					DailyFine:  2,
				}
				svc.EXPECT().CreateHistoryItem(context.Background(), req).
					Return(model.HistoryItem{
						ID:         1,
						BookItemID: 2,
						ReaderID:   3,
						DateTaken:  model.NewDate(2024, 1, 10),
						DateDue:    model.NewDate(2024, 1, 24),
						DailyFine:  2,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"bookItemID":2,"readerID":3,"dateTaken":"2024-01-10","dateDue":"2024-01-24","fine":0,"dailyFine":2,"isFinePaid":false}`,
			},
		},
		{
			name:      "copy already on loan",
			inputBody: `{"bookItemID":2,"readerID":3,"dateTaken":"2024-01-10","dateDue":"2024-01-24","dailyFine":2}`,
			mockBehavior: func(svc *mock_handler.MockLoanService) {
				svc.EXPECT().CreateHistoryItem(context.Background(), gomock.Any()).
					Return(model.HistoryItem{}, errs.ErrBookItemBorrowed)
			},
			response: response{
				expectedCode: http.StatusUnprocessableEntity,
				expectedBody: `{"message":"book item already has an open loan"}`,
			},
		},
		{
			name:         "missing reader",
			inputBody:    `{"bookItemID":2,"dateTaken":"2024-01-10","dateDue":"2024-01-24"}`,
			mockBehavior: func(svc *mock_handler.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gomock.NewController(t)
			defer c.Finish()
			svc := mock_handler.NewMockLoanService(c)
			tt.mockBehavior(svc)

			h := handler.New(handler.Services{Loan: svc}, nil, zap.NewNop())
			e := newTestRouter(h)
			e.POST("/api/v1/loans", h.CreateHistoryItem)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(tt.inputBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_UpdateHistoryItem(t *testing.T) {
	t.Parallel()

	type mockBehavior func(svc *mock_handler.MockLoanService)

	type response struct {
		expectedCode int
		expectedBody string
	}

	returned := model.NewDate(2024, 1, 20)

	tests := []struct {
		name         string
		id           string
		inputBody    string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:      "return with fine",
			id:        "1",
			inputBody: `{"dateReturned":"2024-01-20"}`,
			mockBehavior: func(svc *mock_handler.MockLoanService) {
				req := model.UpdateHistoryItemRequest{DateReturned: &returned}
				svc.EXPECT().UpdateHistoryItem(context.Background(), 1, req).
					Return(model.HistoryItem{
						ID:           1,
						BookItemID:   2,
						ReaderID:     3,
						DateTaken:    model.NewDate(2024, 1, 1),
						DateDue:      model.NewDate(2024, 1, 15),
						DateReturned: &returned,
						Fine:         10,
						DailyFine:    2,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"id":1,"bookItemID":2,"readerID":3,"dateTaken":"2024-01-01","dateDue":"2024-01-15","dateReturned":"2024-01-20","fine":10,"dailyFine":2,"isFinePaid":false}`,
			},
		},
		{
			name:      "not found",
			id:        "42",
			inputBody: `{}`,
			mockBehavior: func(svc *mock_handler.MockLoanService) {
				svc.EXPECT().UpdateHistoryItem(context.Background(), 42, model.UpdateHistoryItemRequest{}).
					Return(model.HistoryItem{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
			},
		},
		{
			name:         "bad id",
			id:           "abc",
			inputBody:    `{}`,
			mockBehavior: func(svc *mock_handler.MockLoanService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gomock.NewController(t)
			defer c.Finish()
			svc := mock_handler.NewMockLoanService(c)
			tt.mockBehavior(svc)

			h := handler.New(handler.Services{Loan: svc}, nil, zap.NewNop())
			e := newTestRouter(h)
			e.PATCH("/api/v1/loans/:id", h.UpdateHistoryItem)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPatch, "/api/v1/loans/"+tt.id, strings.NewReader(tt.inputBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ListHistoryItems(t *testing.T) {
	t.Parallel()

	type mockBehavior func(svc *mock_handler.MockLoanService)

	tests := []struct {
		name         string
		query        string
		mockBehavior mockBehavior
		expectedCode int
	}{
		{
			name:  "filter by status",
			query: "?status=PENDING&readerID=3",
			mockBehavior: func(svc *mock_handler.MockLoanService) {
				req := model.ListHistoryItemsRequest{ReaderID: 3, Status: model.LoanPending}
				svc.EXPECT().ListHistoryItems(context.Background(), req).
					Return(model.ListHistoryItems{Items: []model.HistoryItem{}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "unknown status",
			query:        "?status=LOST",
			mockBehavior: func(svc *mock_handler.MockLoanService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad page",
			query:        "?page=x",
			mockBehavior: func(svc *mock_handler.MockLoanService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gomock.NewController(t)
			defer c.Finish()
			svc := mock_handler.NewMockLoanService(c)
			tt.mockBehavior(svc)

			h := handler.New(handler.Services{Loan: svc}, nil, zap.NewNop())
			e := newTestRouter(h)
			e.GET("/api/v1/loans", h.ListHistoryItems)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/loans"+tt.query, nil)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
