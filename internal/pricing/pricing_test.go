package pricing

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafacile/quote-service/internal/model"
)

func svc(price string) model.Service {
	return model.Service{
		ID:        uuid.New(),
		BasePrice: decimal.RequireFromString(price),
	}
}

func line(price string, qty int) model.CartLine {
	s := svc(price)
	total, err := PriceLine(s, qty)
	if err != nil {
		panic(err)
	}
	return model.CartLine{Service: s, Quantity: qty, LineTotal: total}
}

func TestPriceLine(t *testing.T) {
	t.Run("multiplies price by quantity", func(t *testing.T) {
		total, err := PriceLine(svc("45.00"), 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.RequireFromString("135.00")) {
			t.Fatalf("expected 135.00, got %s", total)
		}
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		if _, err := PriceLine(svc("45.00"), 0); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		if _, err := PriceLine(svc("45.00"), -2); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestSumServices(t *testing.T) {
	t.Run("empty input yields zero", func(t *testing.T) {
		if total := SumServices(nil); !total.IsZero() {
			t.Fatalf("expected zero, got %s", total)
		}
	})

	t.Run("order independent", func(t *testing.T) {
		a := line("80.00", 1)
		b := line("45.00", 2)
		c := line("12.50", 4)

		forward := SumServices([]model.CartLine{a, b, c})
		reversed := SumServices([]model.CartLine{c, b, a})
		if !forward.Equal(reversed) {
			t.Fatalf("sum depends on order: %s vs %s", forward, reversed)
		}
		if !forward.Equal(decimal.RequireFromString("220.00")) {
			t.Fatalf("expected 220.00, got %s", forward)
		}
	})

	t.Run("no drift across many small lines", func(t *testing.T) {
		lines := make([]model.CartLine, 0, 100)
		for i := 0; i < 100; i++ {
			lines = append(lines, line("0.10", 1))
		}
		if total := SumServices(lines); !total.Equal(decimal.RequireFromString("10.00")) {
			t.Fatalf("expected 10.00, got %s", total)
		}
	})
}

func TestComputeTotals(t *testing.T) {
	t.Run("empty cart is all zeros", func(t *testing.T) {
		totals := ComputeTotals(nil, nil)
		if !totals.ServicesTotal.IsZero() || !totals.AddonsTotal.IsZero() || !totals.FinalTotal.IsZero() {
			t.Fatalf("expected zero totals, got %+v", totals)
		}
	})

	t.Run("final is services plus addons", func(t *testing.T) {
		lines := []model.CartLine{line("60.00", 1), line("45.00", 2)}
		addons := []model.AddonService{
			{ID: uuid.New(), Price: decimal.RequireFromString("25.00")},
			{ID: uuid.New(), Price: decimal.RequireFromString("15.50")},
		}

		totals := ComputeTotals(lines, addons)
		if !totals.ServicesTotal.Equal(decimal.RequireFromString("150.00")) {
			t.Fatalf("services total: expected 150.00, got %s", totals.ServicesTotal)
		}
		if !totals.AddonsTotal.Equal(decimal.RequireFromString("40.50")) {
			t.Fatalf("addons total: expected 40.50, got %s", totals.AddonsTotal)
		}
		if !totals.FinalTotal.Equal(decimal.RequireFromString("190.50")) {
			t.Fatalf("final total: expected 190.50, got %s", totals.FinalTotal)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		lines := []model.CartLine{line("33.33", 3)}
		first := ComputeTotals(lines, nil)
		second := ComputeTotals(lines, nil)
		if !first.FinalTotal.Equal(second.FinalTotal) {
			t.Fatalf("same input produced different totals: %s vs %s", first.FinalTotal, second.FinalTotal)
		}
	})
}
