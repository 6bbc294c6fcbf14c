package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/casafacile/quote-service/internal/model"
)

type CatalogBrowser interface {
	ListCategories(ctx context.Context) ([]model.ServiceCategory, error)
	ListServices(ctx context.Context, categoryName *string) ([]model.Service, error)
	ListAddons(ctx context.Context, categoryIDs []uuid.UUID) ([]model.AddonService, error)
}

// CatalogService exposes the read-only browsing surface of the catalog.
type CatalogService struct {
	catalog CatalogBrowser
}

func NewCatalogService(catalog CatalogBrowser) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return categories, nil
}

func (s *CatalogService) ListServices(ctx context.Context, categoryName *string) ([]model.Service, error) {
	services, err := s.catalog.ListServices(ctx, categoryName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return services, nil
}

func (s *CatalogService) ListAddons(ctx context.Context, categoryIDs []uuid.UUID) ([]model.AddonService, error) {
	addons, err := s.catalog.ListAddons(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return addons, nil
}
