package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/service"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
}

func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) CreateInventory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	inv := entity.Inventory{}
	if err := c.Bind(&inv); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.inventoryService.Create(c.Request().Context(), userID, &inv)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandler) GetInventory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	inv, err := h.inventoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *InventoryHandler) UpdateInventory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	inv := entity.Inventory{}
	if err := c.Bind(&inv); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	inv.ID = id

	updated, err := h.inventoryService.Update(c.Request().Context(), userID, &inv)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *InventoryHandler) DeleteInventory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.inventoryService.Delete(c.Request().Context(), userID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryHandler) ListInventories(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.inventoryService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) ListByRetailPoint(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.inventoryService.ListByRetailPoint(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) CreateRetailPoint(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	rp := entity.RetailPoint{}
	if err := c.Bind(&rp); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.inventoryService.CreateRetailPoint(c.Request().Context(), userID, &rp)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandler) ListRetailPoints(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	points, err := h.inventoryService.ListRetailPoints(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, points)
}

// CreateMovement records a stock movement against an inventory and returns
// the appended ledger entry.
func (h *InventoryHandler) CreateMovement(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	m := entity.StockMovement{}
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	m.InventoryID = id
	m.CreatedBy = &userID

	created, err := h.inventoryService.RecordMovement(c.Request().Context(), &m)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandler) ListMovements(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	movements, err := h.inventoryService.ListMovements(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movements)
}
