package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func (h *Handler) createNamed(c echo.Context, create func(ctx context.Context, name string) (any, error)) error {
	var req model.CreateCatalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	entry, err := create(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) CreateAuthor(c echo.Context) error {
	return h.createNamed(c, func(ctx context.Context, name string) (any, error) {
		return h.catalogSvc.CreateAuthor(ctx, name)
	})
}

func (h *Handler) GetAuthor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	author, err := h.catalogSvc.GetAuthor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, author)
}

func (h *Handler) ListAuthors(c echo.Context) error {
	authors, err := h.catalogSvc.ListAuthors(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, authors)
}

func (h *Handler) DeleteAuthor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalogSvc.DeleteAuthor(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreatePublisher(c echo.Context) error {
	return h.createNamed(c, func(ctx context.Context, name string) (any, error) {
		return h.catalogSvc.CreatePublisher(ctx, name)
	})
}

func (h *Handler) GetPublisher(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	pub, err := h.catalogSvc.GetPublisher(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pub)
}

func (h *Handler) ListPublishers(c echo.Context) error {
	pubs, err := h.catalogSvc.ListPublishers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pubs)
}

func (h *Handler) DeletePublisher(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalogSvc.DeletePublisher(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	return h.createNamed(c, func(ctx context.Context, name string) (any, error) {
		return h.catalogSvc.CreateCategory(ctx, name)
	})
}

func (h *Handler) GetCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cat, err := h.catalogSvc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) ListCategories(c echo.Context) error {
	cats, err := h.catalogSvc.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalogSvc.DeleteCategory(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
