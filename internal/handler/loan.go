package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
)

func (h *Handler) CreateHistoryItem(c echo.Context) error {
	var req model.CreateHistoryItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	loan, err := h.loanSvc.CreateHistoryItem(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) GetHistoryItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	loan, err := h.loanSvc.GetHistoryItem(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ListHistoryItems(c echo.Context) error {
	req := model.ListHistoryItemsRequest{
		Status: model.LoanStatus(c.QueryParam("status")),
	}
	var err error
	if req.ReaderID, err = queryInt(c, "readerID"); err != nil {
		return err
	}
	if req.Page, err = queryInt(c, "page"); err != nil {
		return err
	}
	if req.Size, err = queryInt(c, "size"); err != nil {
		return err
	}
	switch req.Status {
	case "", model.LoanReturned, model.LoanBorrowed, model.LoanPending:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	loans, err := h.loanSvc.ListHistoryItems(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) UpdateHistoryItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.UpdateHistoryItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	loan, err := h.loanSvc.UpdateHistoryItem(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) DeleteHistoryItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.loanSvc.DeleteHistoryItem(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
