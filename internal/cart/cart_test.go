package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafacile/quote-service/internal/model"
)

func testService(price string) model.Service {
	return model.Service{
		ID:        uuid.New(),
		Name:      "Riparazione perdite",
		BasePrice: decimal.RequireFromString(price),
	}
}

func testAddon(price string) model.AddonService {
	return model.AddonService{
		ID:    uuid.New(),
		Name:  "Urgenza 24h",
		Price: decimal.RequireFromString(price),
	}
}

func TestApplyAddService(t *testing.T) {
	t.Run("adding the same service twice merges into one line", func(t *testing.T) {
		svc := testService("45.00")
		state := Reduce(State{},
			AddService{Service: svc, Quantity: 2},
			AddService{Service: svc, Quantity: 3},
		)

		if len(state.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(state.Lines))
		}
		if state.Lines[0].Quantity != 5 {
			t.Fatalf("expected merged quantity 5, got %d", state.Lines[0].Quantity)
		}
		if !state.Lines[0].LineTotal.Equal(decimal.RequireFromString("225.00")) {
			t.Fatalf("expected line total 225.00, got %s", state.Lines[0].LineTotal)
		}
	})

	t.Run("distinct services get distinct lines", func(t *testing.T) {
		state := Reduce(State{},
			AddService{Service: testService("45.00"), Quantity: 1},
			AddService{Service: testService("80.00"), Quantity: 1},
		)
		if len(state.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(state.Lines))
		}
		if !state.Totals.FinalTotal.Equal(decimal.RequireFromString("125.00")) {
			t.Fatalf("expected total 125.00, got %s", state.Totals.FinalTotal)
		}
	})

	t.Run("non-positive quantity is ignored", func(t *testing.T) {
		state := Apply(State{}, AddService{Service: testService("45.00"), Quantity: 0})
		if len(state.Lines) != 0 {
			t.Fatalf("expected no lines, got %d", len(state.Lines))
		}
	})
}

func TestApplySetQuantity(t *testing.T) {
	t.Run("updates quantity and line total", func(t *testing.T) {
		svc := testService("60.00")
		state := Reduce(State{},
			AddService{Service: svc, Quantity: 1},
			SetQuantity{ServiceID: svc.ID, Quantity: 4},
		)
		if state.Lines[0].Quantity != 4 {
			t.Fatalf("expected quantity 4, got %d", state.Lines[0].Quantity)
		}
		if !state.Totals.ServicesTotal.Equal(decimal.RequireFromString("240.00")) {
			t.Fatalf("expected services total 240.00, got %s", state.Totals.ServicesTotal)
		}
	})

	t.Run("zero removes the line and its total", func(t *testing.T) {
		svc := testService("60.00")
		state := Reduce(State{},
			AddService{Service: svc, Quantity: 2},
			SetQuantity{ServiceID: svc.ID, Quantity: 0},
		)
		if len(state.Lines) != 0 {
			t.Fatalf("expected no lines, got %d", len(state.Lines))
		}
		if !state.Totals.FinalTotal.IsZero() {
			t.Fatalf("expected zero total, got %s", state.Totals.FinalTotal)
		}
	})
}

func TestApplyRemoveService(t *testing.T) {
	keep := testService("45.00")
	drop := testService("80.00")
	state := Reduce(State{},
		AddService{Service: keep, Quantity: 1},
		AddService{Service: drop, Quantity: 1},
		RemoveService{ServiceID: drop.ID},
	)

	if len(state.Lines) != 1 || state.Lines[0].Service.ID != keep.ID {
		t.Fatalf("expected only the kept service to remain")
	}
	if !state.Totals.FinalTotal.Equal(decimal.RequireFromString("45.00")) {
		t.Fatalf("expected total 45.00, got %s", state.Totals.FinalTotal)
	}
}

func TestApplyAddons(t *testing.T) {
	t.Run("re-adding a selected addon is a no-op", func(t *testing.T) {
		addon := testAddon("25.00")
		state := Reduce(State{},
			AddAddon{Addon: addon},
			AddAddon{Addon: addon},
		)
		if len(state.Addons) != 1 {
			t.Fatalf("expected 1 addon, got %d", len(state.Addons))
		}
		if !state.Totals.AddonsTotal.Equal(decimal.RequireFromString("25.00")) {
			t.Fatalf("expected addons total 25.00, got %s", state.Totals.AddonsTotal)
		}
	})

	t.Run("remove addon drops it from the totals", func(t *testing.T) {
		addon := testAddon("25.00")
		state := Reduce(State{},
			AddAddon{Addon: addon},
			RemoveAddon{AddonID: addon.ID},
		)
		if len(state.Addons) != 0 {
			t.Fatalf("expected no addons, got %d", len(state.Addons))
		}
		if !state.Totals.AddonsTotal.IsZero() {
			t.Fatalf("expected zero addons total, got %s", state.Totals.AddonsTotal)
		}
	})
}

func TestApplyFormEvents(t *testing.T) {
	start := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	state := Reduce(State{},
		SetAddress{Address: "Via Roma 1, Milano"},
		SetDescription{Description: "perdita sotto il lavello"},
		SetStartDate{StartDate: start},
	)

	if state.Address != "Via Roma 1, Milano" {
		t.Fatalf("address not applied: %q", state.Address)
	}
	if state.Description != "perdita sotto il lavello" {
		t.Fatalf("description not applied: %q", state.Description)
	}
	if !state.StartDate.Equal(start) {
		t.Fatalf("start date not applied: %s", state.StartDate)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	svc := testService("45.00")
	before := Reduce(State{}, AddService{Service: svc, Quantity: 1})

	_ = Apply(before, SetQuantity{ServiceID: svc.ID, Quantity: 10})

	if before.Lines[0].Quantity != 1 {
		t.Fatalf("input state mutated: quantity is %d", before.Lines[0].Quantity)
	}
}

func TestApplyReset(t *testing.T) {
	state := Reduce(State{},
		AddService{Service: testService("45.00"), Quantity: 2},
		AddAddon{Addon: testAddon("25.00")},
		Reset{},
	)
	if len(state.Lines) != 0 || len(state.Addons) != 0 || !state.Totals.FinalTotal.IsZero() {
		t.Fatalf("expected empty state after reset, got %+v", state)
	}
}
