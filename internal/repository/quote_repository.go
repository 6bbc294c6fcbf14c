package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/casafacile/quote-service/internal/model"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// Create persists the quote with its item and add-on snapshots in one
// transaction: a concurrent dashboard read either sees the whole quote or
// nothing. Returns the stored aggregate with children attached.
func (r *QuoteRepository) Create(ctx context.Context, quote model.Quote) (*model.Quote, error) {
	var saved model.Quote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			INSERT INTO quotes (
				user_id,
				status,
				total_amount,
				work_start_date,
				estimated_end_date,
				address,
				description
			) VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING
				id,
				user_id,
				status,
				total_amount,
				work_start_date,
				estimated_end_date,
				address,
				description,
				created_at,
				updated_at
		`,
			quote.UserID,
			quote.Status,
			quote.TotalAmount,
			quote.WorkStartDate,
			quote.EstimatedEndDate,
			quote.Address,
			quote.Description,
		).Scan(&saved).Error
		if err != nil {
			return err
		}

		for _, item := range quote.Items {
			if err := tx.Exec(`
				INSERT INTO quote_items (quote_id, service_id, quantity, unit_price, total_price)
				VALUES (?, ?, ?, ?, ?)
			`, saved.ID, item.ServiceID, item.Quantity, item.UnitPrice, item.TotalPrice).Error; err != nil {
				return err
			}
		}

		for _, addon := range quote.Addons {
			if err := tx.Exec(`
				INSERT INTO quote_addons (quote_id, addon_id, price)
				VALUES (?, ?, ?)
			`, saved.ID, addon.AddonID, addon.Price).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, saved.ID)
}

// GetByID returns one quote with item and add-on detail.
func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, error) {
	var quote model.Quote
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			status,
			total_amount,
			work_start_date,
			estimated_end_date,
			address,
			description,
			created_at,
			updated_at
		FROM quotes
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&quote).Error
	if err != nil {
		return nil, err
	}
	if quote.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	quotes := []model.Quote{quote}
	if err := r.attachChildren(ctx, quotes); err != nil {
		return nil, err
	}
	return &quotes[0], nil
}

// ListByUser returns the owner's quotes newest-first with full detail.
func (r *QuoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Quote, error) {
	var quotes []model.Quote
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			status,
			total_amount,
			work_start_date,
			estimated_end_date,
			address,
			description,
			created_at,
			updated_at
		FROM quotes
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID).Scan(&quotes).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachChildren(ctx, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

type quoteItemRow struct {
	ID                uuid.UUID
	QuoteID           uuid.UUID
	ServiceID         uuid.UUID
	Quantity          int
	UnitPrice         decimal.Decimal
	TotalPrice        decimal.Decimal
	ServiceName       string
	ServiceUnit       string
	EstimatedDuration float64
	CategoryID        uuid.UUID
	CategoryName      string
}

type quoteAddonRow struct {
	ID        uuid.UUID
	QuoteID   uuid.UUID
	AddonID   uuid.UUID
	Price     decimal.Decimal
	AddonName string
}

func (r *QuoteRepository) attachChildren(ctx context.Context, quotes []model.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	quoteIDs := make([]uuid.UUID, 0, len(quotes))
	index := make(map[uuid.UUID]int, len(quotes))
	for i, quote := range quotes {
		quoteIDs = append(quoteIDs, quote.ID)
		index[quote.ID] = i
	}

	var items []quoteItemRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			qi.id,
			qi.quote_id,
			qi.service_id,
			qi.quantity,
			qi.unit_price,
			qi.total_price,
			s.name AS service_name,
			s.unit AS service_unit,
			s.estimated_duration,
			s.category_id,
			c.name AS category_name
		FROM quote_items qi
		JOIN services s ON s.id = qi.service_id
		JOIN service_categories c ON c.id = s.category_id
		WHERE qi.quote_id = ANY(?)
		ORDER BY s.name ASC
	`, quoteIDs).Scan(&items).Error
	if err != nil {
		return err
	}
	for _, row := range items {
		i := index[row.QuoteID]
		quotes[i].Items = append(quotes[i].Items, model.QuoteItem{
			ID:         row.ID,
			QuoteID:    row.QuoteID,
			ServiceID:  row.ServiceID,
			Quantity:   row.Quantity,
			UnitPrice:  row.UnitPrice,
			TotalPrice: row.TotalPrice,
			Service: model.Service{
				ID:                row.ServiceID,
				CategoryID:        row.CategoryID,
				Name:              row.ServiceName,
				BasePrice:         row.UnitPrice,
				Unit:              row.ServiceUnit,
				EstimatedDuration: row.EstimatedDuration,
				Category: model.ServiceCategory{
					ID:   row.CategoryID,
					Name: row.CategoryName,
				},
			},
		})
	}

	var addons []quoteAddonRow
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			qa.id,
			qa.quote_id,
			qa.addon_id,
			qa.price,
			a.name AS addon_name
		FROM quote_addons qa
		JOIN addon_services a ON a.id = qa.addon_id
		WHERE qa.quote_id = ANY(?)
		ORDER BY a.name ASC
	`, quoteIDs).Scan(&addons).Error
	if err != nil {
		return err
	}
	for _, row := range addons {
		i := index[row.QuoteID]
		quotes[i].Addons = append(quotes[i].Addons, model.QuoteAddon{
			ID:      row.ID,
			QuoteID: row.QuoteID,
			AddonID: row.AddonID,
			Price:   row.Price,
			Addon: model.AddonService{
				ID:    row.AddonID,
				Name:  row.AddonName,
				Price: row.Price,
			},
		})
	}

	return nil
}
