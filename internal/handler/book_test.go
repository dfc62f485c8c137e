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
)

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()

	type mockBehavior func(svc *mock_handler.MockInventoryService)

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
			inputBody: `{"authorID":1,"publisherID":2,"title":"The Go Programming Language","bookItemTotal":3,"categoryIDs":[1,4]}`,
			mockBehavior: func(svc *mock_handler.MockInventoryService) {
				req := model.CreateBookRequest{
					AuthorID:      1,
					PublisherID:   2,
					Title:         "The Go Programming Language",
					BookItemTotal: 3,
					CategoryIDs:   []int{1, 4},
				}
				svc.EXPECT().CreateBook(context.Background(), req).
					Return(model.Book{
						ID:            5,
						AuthorID:      1,
						PublisherID:   2,
						Title:         "The Go Programming Language",
						Activated:     true,
						Available:     true,
						BookItemTotal: 3,
						CategoryIDs:   []int{1, 4},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":5,"authorID":1,"publisherID":2,"title":"The Go Programming Language","isbn":"","synopsis":"","activated":true,"available":true,"bookItemTotal":3,"bookItemUnavailable":0,"categoryIDs":[1,4]}`,
			},
		},
		{
			name:         "missing title",
			inputBody:    `{"authorID":1,"publisherID":2}`,
			mockBehavior: func(svc *mock_handler.MockInventoryService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:      "unknown author",
			inputBody: `{"authorID":99,"publisherID":2,"title":"Orphan"}`,
			mockBehavior: func(svc *mock_handler.MockInventoryService) {
				svc.EXPECT().CreateBook(context.Background(), gomock.Any()).
					Return(model.Book{}, errs.ErrReferenced)
			},
			response: response{
				expectedCode: http.StatusConflict,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gomock.NewController(t)
			defer c.Finish()
			svc := mock_handler.NewMockInventoryService(c)
			tt.mockBehavior(svc)

			h := handler.New(handler.Services{Inventory: svc}, nil, zap.NewNop())
			e := newTestRouter(h)
			e.POST("/api/v1/books", h.CreateBook)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(tt.inputBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ListBooks(t *testing.T) {
	t.Parallel()

	type mockBehavior func(svc *mock_handler.MockInventoryService)

	tests := []struct {
		name         string
		query        string
		mockBehavior mockBehavior
		expectedCode int
	}{
		{
			name:  "filter by category",
			query: "?categoryID=4",
			mockBehavior: func(svc *mock_handler.MockInventoryService) {
				req := model.ListBooksRequest{CategoryID: 4}
				svc.EXPECT().ListBooks(context.Background(), req).
					Return(model.ListBooks{Items: []model.Book{}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "bad category id",
			query:        "?categoryID=x",
			mockBehavior: func(svc *mock_handler.MockInventoryService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gomock.NewController(t)
			defer c.Finish()
			svc := mock_handler.NewMockInventoryService(c)
			tt.mockBehavior(svc)

			h := handler.New(handler.Services{Inventory: svc}, nil, zap.NewNop())
			e := newTestRouter(h)
			e.GET("/api/v1/books", h.ListBooks)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/books"+tt.query, nil)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestHandler_UpdateBook(t *testing.T) {
	t.Parallel()

	type mockBehavior func(svc *mock_handler.MockInventoryService)

	total := 1

	tests := []struct {
		name         string
		id           string
		inputBody    string
		mockBehavior mockBehavior
		expectedCode int
	}{
		{
			name:      "ok",
			id:        "5",
			inputBody: `{"bookItemTotal":1}`,
			mockBehavior: func(svc *mock_handler.MockInventoryService) {
				req := model.UpdateBookRequest{BookItemTotal: &total}
				svc.EXPECT().UpdateBook(context.Background(), 5, req).
					Return(model.Book{ID: 5, BookItemTotal: 1}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "total reduced",
			id:        "5",
			inputBody: `{"bookItemTotal":1}`,
			mockBehavior: func(svc *mock_handler.MockInventoryService) {
				svc.EXPECT().UpdateBook(context.Background(), 5, gomock.Any()).
					Return(model.Book{}, errs.ErrBookItemTotalReduced)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:      "not found",
			id:        "99",
			inputBody: `{"title":"x"}`,
			mockBehavior: func(svc *mock_handler.MockInventoryService) {
				svc.EXPECT().UpdateBook(context.Background(), 99, gomock.Any()).
					Return(model.Book{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := gomock.NewController(t)
			defer c.Finish()
			svc := mock_handler.NewMockInventoryService(c)
			tt.mockBehavior(svc)

			h := handler.New(handler.Services{Inventory: svc}, nil, zap.NewNop())
			e := newTestRouter(h)
			e.PATCH("/api/v1/books/:id", h.UpdateBook)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPatch, "/api/v1/books/"+tt.id, strings.NewReader(tt.inputBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
