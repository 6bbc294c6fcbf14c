package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (service, quantity) pairing in a cart. A cart holds at
// most one line per service; LineTotal is always quantity * base price.
type CartLine struct {
	Service   Service
	Quantity  int
	LineTotal decimal.Decimal
}

type QuoteTotals struct {
	ServicesTotal decimal.Decimal
	AddonsTotal   decimal.Decimal
	FinalTotal    decimal.Decimal
}

type WorkSchedule struct {
	TotalHours  float64
	WorkingDays int
	StartDate   time.Time
	EndDate     time.Time
}
