// Package pricing computes line and cart totals from catalog prices and
// user-chosen quantities. All functions are pure and deterministic: the
// interactive cart reducer and the authoritative submission path both go
// through here, so the two can never disagree.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/casafacile/quote-service/internal/model"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// PriceLine returns quantity * unit price rounded to currency cents.
// A non-positive quantity is a caller bug, not a remove request.
func PriceLine(svc model.Service, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, ErrInvalidQuantity
	}
	return svc.BasePrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2), nil
}

// SumServices sums line totals. Empty input yields zero.
func SumServices(lines []model.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// SumAddons sums add-on prices. Empty input yields zero.
func SumAddons(addons []model.AddonService) decimal.Decimal {
	total := decimal.Zero
	for _, addon := range addons {
		total = total.Add(addon.Price.Round(2))
	}
	return total
}

func ComputeTotals(lines []model.CartLine, addons []model.AddonService) model.QuoteTotals {
	servicesTotal := SumServices(lines)
	addonsTotal := SumAddons(addons)
	return model.QuoteTotals{
		ServicesTotal: servicesTotal,
		AddonsTotal:   addonsTotal,
		FinalTotal:    servicesTotal.Add(addonsTotal),
	}
}
