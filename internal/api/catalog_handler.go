package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
	"marketplace-backend/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	p := entity.Product{}
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.catalogService.CreateProduct(c.Request().Context(), userID, &p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// ListProducts supports optional category and manufacturer query filters.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	f := repository.ProductFilter{ActiveOnly: true}
	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid category_id"})
		}
		f.CategoryID = &id
	}
	if v := c.QueryParam("manufacturer_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid manufacturer_id"})
		}
		f.ManufacturerID = &id
	}

	products, err := h.catalogService.ListProducts(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) CreateFormat(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	pf := entity.ProductFormat{}
	if err := c.Bind(&pf); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.catalogService.CreateFormat(c.Request().Context(), userID, productID, &pf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) ListFormats(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	formats, err := h.catalogService.ListFormats(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, formats)
}

func (h *CatalogHandler) UpdateFormat(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	formatID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	pf := entity.ProductFormat{}
	if err := c.Bind(&pf); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	pf.ID = formatID

	updated, err := h.catalogService.UpdateFormat(c.Request().Context(), userID, &pf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteFormat(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	formatID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteFormat(c.Request().Context(), userID, formatID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
