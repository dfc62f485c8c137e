package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fabiopiovam/dj-la-library-system/internal/model"
	"github.com/fabiopiovam/dj-la-library-system/pkg/auth"
)

func (h *Handler) CreateReader(c echo.Context) error {
	var req model.CreateReaderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	reader, err := h.readerSvc.CreateReader(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reader)
}

func (h *Handler) GetReader(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	reader, err := h.readerSvc.GetReader(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reader)
}

func (h *Handler) ListReaders(c echo.Context) error {
	readers, err := h.readerSvc.ListReaders(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, readers)
}

func (h *Handler) ReaderLoans(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	loans, err := h.readerSvc.ReaderLoans(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	resp, err := h.authSvc.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	var req model.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	username := auth.Username(c.Request().Context())
	if username == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no authenticated user")
	}
	if err := h.authSvc.ChangePassword(c.Request().Context(), username, req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
