package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceCategory struct {
	ID           uuid.UUID
	Name         string
	Description  *string
	IsActive     bool
	CreatedAt    time.Time
	ServiceCount int64
}

type Service struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description *string
	BasePrice   decimal.Decimal
	// Unit is the billing unit label ("ore", "unità", "mq").
	Unit string
	// EstimatedDuration is hours of labor per unit.
	EstimatedDuration float64
	IsActive          bool
	CreatedAt         time.Time
	Category          ServiceCategory `gorm:"-"`
}

type AddonService struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	IsActive bool
	// ApplicableCategoryIDs limits which service categories the add-on is
	// offered alongside. Advisory for listings; selection is not rejected
	// when the cart holds no matching category.
	ApplicableCategoryIDs []uuid.UUID `gorm:"-"`
}
