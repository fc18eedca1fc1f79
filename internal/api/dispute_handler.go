package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
	"marketplace-backend/internal/service"
)

type DisputeHandler struct {
	disputeService *service.DisputeService
}

func NewDisputeHandler(disputeService *service.DisputeService) *DisputeHandler {
	return &DisputeHandler{disputeService: disputeService}
}

func (h *DisputeHandler) CreateDispute(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	d := entity.Dispute{}
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.disputeService.Create(c.Request().Context(), userID, &d)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *DisputeHandler) GetDispute(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	d, err := h.disputeService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DisputeHandler) ListDisputes(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	f := repository.DisputeFilter{
		Status:      c.QueryParam("status"),
		DisputeType: c.QueryParam("type"),
	}
	disputes, err := h.disputeService.ListForUser(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, disputes)
}

type disputeMessageRequest struct {
	Message string `json:"message"`
}

func (h *DisputeHandler) AddMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req := disputeMessageRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	m, err := h.disputeService.AddMessage(c.Request().Context(), userID, id, req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

type disputeResolveRequest struct {
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

func (h *DisputeHandler) ResolveDispute(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	req := disputeResolveRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	d, err := h.disputeService.Resolve(c.Request().Context(), userID, id, req.Status, req.Resolution)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
