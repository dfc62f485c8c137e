package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func (h *Handler) CreateBookItem(c echo.Context) error {
	var req model.CreateBookItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	item, err := h.inventorySvc.CreateBookItem(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetBookItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.inventorySvc.GetBookItem(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) ListBookItems(c echo.Context) error {
	req := model.ListBookItemsRequest{
		Status: model.CopyStatus(c.QueryParam("status")),
	}
	var err error
	if req.BookID, err = queryInt(c, "bookID"); err != nil {
		return err
	}
	if req.Page, err = queryInt(c, "page"); err != nil {
		return err
	}
	if req.Size, err = queryInt(c, "size"); err != nil {
		return err
	}
	switch req.Status {
	case "", model.CopyAvailable, model.CopyUnavailable, model.CopyBorrowed, model.CopyPending:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	items, err := h.inventorySvc.ListBookItems(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateBookItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.UpdateBookItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.inventorySvc.UpdateBookItem(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteBookItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.inventorySvc.DeleteBookItem(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
