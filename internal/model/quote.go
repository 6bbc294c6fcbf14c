package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "DRAFT"
	QuoteStatusPending   QuoteStatus = "PENDING"
	QuoteStatusApproved  QuoteStatus = "APPROVED"
	QuoteStatusRejected  QuoteStatus = "REJECTED"
	QuoteStatusCompleted QuoteStatus = "COMPLETED"
)

// Quote is the persisted aggregate. TotalAmount and the item/add-on
// snapshots are frozen at creation; only Status changes afterwards.
type Quote struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Status           QuoteStatus
	TotalAmount      decimal.Decimal
	WorkStartDate    time.Time
	EstimatedEndDate time.Time
	Address          string
	Description      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []QuoteItem  `gorm:"-"`
	Addons           []QuoteAddon `gorm:"-"`
}

type QuoteItem struct {
	ID         uuid.UUID
	QuoteID    uuid.UUID
	ServiceID  uuid.UUID
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Service    Service `gorm:"-"`
}

type QuoteAddon struct {
	ID      uuid.UUID
	QuoteID uuid.UUID
	AddonID uuid.UUID
	Price   decimal.Decimal
	Addon   AddonService `gorm:"-"`
}
