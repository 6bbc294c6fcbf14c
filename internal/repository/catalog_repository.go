package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/casafacile/quote-service/internal/model"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	var categories []model.ServiceCategory
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.description,
			c.is_active,
			c.created_at,
			COUNT(s.id) FILTER (WHERE s.is_active) AS service_count
		FROM service_categories c
		LEFT JOIN services s ON s.category_id = c.id
		WHERE c.is_active
		GROUP BY c.id
		ORDER BY c.name ASC
	`).Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

type serviceRow struct {
	ID                  uuid.UUID
	CategoryID          uuid.UUID
	Name                string
	Description         *string
	BasePrice           decimal.Decimal
	Unit                string
	EstimatedDuration   float64
	IsActive            bool
	CreatedAt           time.Time
	CategoryName        string
	CategoryDescription *string
	CategoryActive      bool
}

func (row serviceRow) toService() model.Service {
	return model.Service{
		ID:                row.ID,
		CategoryID:        row.CategoryID,
		Name:              row.Name,
		Description:       row.Description,
		BasePrice:         row.BasePrice,
		Unit:              row.Unit,
		EstimatedDuration: row.EstimatedDuration,
		IsActive:          row.IsActive,
		CreatedAt:         row.CreatedAt,
		Category: model.ServiceCategory{
			ID:          row.CategoryID,
			Name:        row.CategoryName,
			Description: row.CategoryDescription,
			IsActive:    row.CategoryActive,
		},
	}
}

const serviceSelect = `
	SELECT
		s.id,
		s.category_id,
		s.name,
		s.description,
		s.base_price,
		s.unit,
		s.estimated_duration,
		s.is_active,
		s.created_at,
		c.name AS category_name,
		c.description AS category_description,
		c.is_active AS category_active
	FROM services s
	JOIN service_categories c ON c.id = s.category_id
`

// ListServices returns active services, optionally filtered by a
// case-insensitive category-name match, ordered by category then name.
func (r *CatalogRepository) ListServices(ctx context.Context, categoryName *string) ([]model.Service, error) {
	query := serviceSelect + ` WHERE s.is_active`
	args := []interface{}{}
	if categoryName != nil && *categoryName != "" {
		query += ` AND c.name ILIKE ?`
		args = append(args, "%"+*categoryName+"%")
	}
	query += ` ORDER BY c.name ASC, s.name ASC`

	var rows []serviceRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	services := make([]model.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, row.toService())
	}
	return services, nil
}

// GetService resolves one active service by id. Inactive or missing
// services report gorm.ErrRecordNotFound.
func (r *CatalogRepository) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var row serviceRow
	err := r.db.WithContext(ctx).Raw(serviceSelect+`
		WHERE s.id = ? AND s.is_active
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	svc := row.toService()
	return &svc, nil
}

// ListAddons returns active add-ons, optionally restricted to those
// applicable to at least one of the given categories.
func (r *CatalogRepository) ListAddons(ctx context.Context, categoryIDs []uuid.UUID) ([]model.AddonService, error) {
	query := `
		SELECT a.id, a.name, a.price, a.is_active
		FROM addon_services a
		WHERE a.is_active
	`
	args := []interface{}{}
	if len(categoryIDs) > 0 {
		query += `
			AND EXISTS (
				SELECT 1 FROM addon_service_categories ac
				WHERE ac.addon_id = a.id AND ac.category_id = ANY(?)
			)
		`
		args = append(args, categoryIDs)
	}
	query += ` ORDER BY a.name ASC`

	var addons []model.AddonService
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&addons).Error; err != nil {
		return nil, err
	}
	if err := r.attachApplicability(ctx, addons); err != nil {
		return nil, err
	}
	return addons, nil
}

func (r *CatalogRepository) GetAddon(ctx context.Context, id uuid.UUID) (*model.AddonService, error) {
	var addon model.AddonService
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, price, is_active
		FROM addon_services
		WHERE id = ? AND is_active
		LIMIT 1
	`, id).Scan(&addon).Error
	if err != nil {
		return nil, err
	}
	if addon.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	addons := []model.AddonService{addon}
	if err := r.attachApplicability(ctx, addons); err != nil {
		return nil, err
	}
	return &addons[0], nil
}

func (r *CatalogRepository) attachApplicability(ctx context.Context, addons []model.AddonService) error {
	if len(addons) == 0 {
		return nil
	}

	addonIDs := make([]uuid.UUID, 0, len(addons))
	for _, addon := range addons {
		addonIDs = append(addonIDs, addon.ID)
	}

	var links []struct {
		AddonID    uuid.UUID
		CategoryID uuid.UUID
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT addon_id, category_id
		FROM addon_service_categories
		WHERE addon_id = ANY(?)
		ORDER BY addon_id, category_id
	`, addonIDs).Scan(&links).Error
	if err != nil {
		return err
	}

	byAddon := make(map[uuid.UUID][]uuid.UUID, len(addons))
	for _, link := range links {
		byAddon[link.AddonID] = append(byAddon[link.AddonID], link.CategoryID)
	}
	for i := range addons {
		addons[i].ApplicableCategoryIDs = byAddon[addons[i].ID]
	}
	return nil
}
