package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/internal/errs"
	md "github.com/fabiopiovam/dj-la-library-system/pkg/middleware"
	"github.com/fabiopiovam/dj-la-library-system/pkg/validate"
)

type Handler struct {
	catalogSvc   CatalogService
	inventorySvc InventoryService
	loanSvc      LoanService
	readerSvc    ReaderService
	authSvc      AuthService
	jwtSecret    []byte
	log          *zap.Logger
}

type Services struct {
	Catalog   CatalogService
	Inventory InventoryService
	Loan      LoanService
	Reader    ReaderService
	Auth      AuthService
}

func New(svc Services, jwtSecret []byte, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc:   svc.Catalog,
		inventorySvc: svc.Inventory,
		loanSvc:      svc.Loan,
		readerSvc:    svc.Reader,
		authSvc:      svc.Auth,
		jwtSecret:    jwtSecret,
		log:          log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/auth/login", h.Login)
	api.POST("/readers", h.CreateReader)

	authed := api.Group("", md.JwtAuthentication(h.jwtSecret))
	authed.POST("/auth/password", h.ChangePassword)

	authed.GET("/books", h.ListBooks)
	authed.GET("/books/:id", h.GetBook)
	authed.GET("/copies", h.ListBookItems)
	authed.GET("/copies/:id", h.GetBookItem)
	authed.GET("/loans", h.ListHistoryItems)
	authed.GET("/loans/:id", h.GetHistoryItem)
	authed.GET("/readers", h.ListReaders)
	authed.GET("/readers/:id", h.GetReader)
	authed.GET("/readers/:id/loans", h.ReaderLoans)
	authed.GET("/authors", h.ListAuthors)
	authed.GET("/authors/:id", h.GetAuthor)
	authed.GET("/publishers", h.ListPublishers)
	authed.GET("/publishers/:id", h.GetPublisher)
	authed.GET("/categories", h.ListCategories)
	authed.GET("/categories/:id", h.GetCategory)

	staff := authed.Group("", md.StaffOnly)
	staff.POST("/books", h.CreateBook)
	staff.PATCH("/books/:id", h.UpdateBook)
	staff.DELETE("/books/:id", h.DeleteBook)
	staff.POST("/copies", h.CreateBookItem)
	staff.PATCH("/copies/:id", h.UpdateBookItem)
	staff.DELETE("/copies/:id", h.DeleteBookItem)
	staff.POST("/loans", h.CreateHistoryItem)
	staff.PATCH("/loans/:id", h.UpdateHistoryItem)
	staff.DELETE("/loans/:id", h.DeleteHistoryItem)
	staff.POST("/authors", h.CreateAuthor)
	staff.DELETE("/authors/:id", h.DeleteAuthor)
	staff.POST("/publishers", h.CreatePublisher)
	staff.DELETE("/publishers/:id", h.DeletePublisher)
	staff.POST("/categories", h.CreateCategory)
	staff.DELETE("/categories/:id", h.DeleteCategory)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps domain errors onto HTTP status codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrBookItemTotalReduced),
		errors.Is(err, errs.ErrBookItemBorrowed):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrAlreadyExists),
		errors.Is(err, errs.ErrReferenced):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	param := c.QueryParam(name)
	if param == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(param)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return v, nil
}
