package service

import (
	"context"
	"time"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
)

type CatalogService struct {
	catalog repository.CatalogRepository
	users   repository.UserRepository
}

func NewCatalogService(catalog repository.CatalogRepository, users repository.UserRepository) *CatalogService {
	return &CatalogService{catalog: catalog, users: users}
}

// CreateProduct registers a product for a manufacturer. Only manufacturer
// accounts may create products.
func (s *CatalogService) CreateProduct(ctx context.Context, userID int, p *entity.Product) (*entity.Product, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.UserType != entity.UserTypeManufacturer {
		return nil, ErrPermissionDenied
	}

	now := time.Now().UTC()
	p.ManufacturerID = userID
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.catalog.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	return s.catalog.GetProductByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	return s.catalog.ListProducts(ctx, f)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.catalog.ListCategories(ctx)
}

// CreateFormat adds a sellable format to one of the caller's products.
func (s *CatalogService) CreateFormat(ctx context.Context, userID, productID int, pf *entity.ProductFormat) (*entity.ProductFormat, error) {
	if err := s.requireManufacturerOf(ctx, userID, productID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pf.ProductID = productID
	pf.IsActive = true
	pf.CreatedAt = now
	pf.UpdatedAt = now
	if err := s.catalog.CreateFormat(ctx, pf); err != nil {
		return nil, err
	}
	return pf, nil
}

func (s *CatalogService) UpdateFormat(ctx context.Context, userID int, pf *entity.ProductFormat) (*entity.ProductFormat, error) {
	current, err := s.catalog.GetFormatByID(ctx, pf.ID)
	if err != nil {
		return nil, err
	}
	if err := s.requireManufacturerOf(ctx, userID, current.ProductID); err != nil {
		return nil, err
	}

	pf.ProductID = current.ProductID
	pf.CreatedAt = current.CreatedAt
	pf.UpdatedAt = time.Now().UTC()
	if err := s.catalog.UpdateFormat(ctx, pf); err != nil {
		return nil, err
	}
	return pf, nil
}

func (s *CatalogService) DeleteFormat(ctx context.Context, userID, formatID int) error {
	pf, err := s.catalog.GetFormatByID(ctx, formatID)
	if err != nil {
		return err
	}
	if err := s.requireManufacturerOf(ctx, userID, pf.ProductID); err != nil {
		return err
	}
	return s.catalog.DeleteFormat(ctx, formatID)
}

func (s *CatalogService) ListFormats(ctx context.Context, productID int) ([]entity.ProductFormat, error) {
	return s.catalog.ListFormats(ctx, productID)
}

func (s *CatalogService) requireManufacturerOf(ctx context.Context, userID, productID int) error {
	p, err := s.catalog.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.ManufacturerID != userID {
		return ErrPermissionDenied
	}
	return nil
}
