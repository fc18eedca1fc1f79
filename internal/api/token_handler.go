package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/service"
)

type TokenHandler struct {
	tokenService *service.TokenService
}

func NewTokenHandler(tokenService *service.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

func (h *TokenHandler) CreateTransaction(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	t := entity.TokenTransaction{}
	if err := c.Bind(&t); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.tokenService.CreateTransaction(c.Request().Context(), userID, &t)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TokenHandler) ListTransactions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	transactions, err := h.tokenService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, transactions)
}
