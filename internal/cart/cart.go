// Package cart is a pure reducer over an in-progress quote draft. Each
// event produces a new State with totals already recomputed, so a UI can
// show live pricing after every interaction. The reducer holds no
// authority: submission re-resolves everything against the catalog.
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/casafacile/quote-service/internal/model"
	"github.com/casafacile/quote-service/internal/pricing"
)

type State struct {
	Lines       []model.CartLine
	Addons      []model.AddonService
	Address     string
	Description string
	StartDate   time.Time
	Totals      model.QuoteTotals
}

type Event interface {
	isEvent()
}

// AddService puts a service in the cart. Adding a service that is already
// present increments its quantity instead of creating a second line.
type AddService struct {
	Service  model.Service
	Quantity int
}

type RemoveService struct {
	ServiceID uuid.UUID
}

// SetQuantity replaces a line's quantity. Zero or below removes the line.
type SetQuantity struct {
	ServiceID uuid.UUID
	Quantity  int
}

// AddAddon selects an add-on. Re-adding a selected add-on is a no-op.
type AddAddon struct {
	Addon model.AddonService
}

type RemoveAddon struct {
	AddonID uuid.UUID
}

type SetAddress struct {
	Address string
}

type SetDescription struct {
	Description string
}

type SetStartDate struct {
	StartDate time.Time
}

type Reset struct{}

func (AddService) isEvent()     {}
func (RemoveService) isEvent()  {}
func (SetQuantity) isEvent()    {}
func (AddAddon) isEvent()       {}
func (RemoveAddon) isEvent()    {}
func (SetAddress) isEvent()     {}
func (SetDescription) isEvent() {}
func (SetStartDate) isEvent()   {}
func (Reset) isEvent()          {}

// Apply returns the state after one event. The input state is not mutated.
func Apply(state State, event Event) State {
	switch e := event.(type) {
	case AddService:
		if e.Quantity <= 0 {
			return state
		}
		lines := cloneLines(state.Lines)
		merged := false
		for i := range lines {
			if lines[i].Service.ID == e.Service.ID {
				lines[i].Quantity += e.Quantity
				lines[i].LineTotal = mustPrice(lines[i].Service, lines[i].Quantity)
				merged = true
				break
			}
		}
		if !merged {
			lines = append(lines, model.CartLine{
				Service:   e.Service,
				Quantity:  e.Quantity,
				LineTotal: mustPrice(e.Service, e.Quantity),
			})
		}
		state.Lines = lines
		return recalc(state)

	case RemoveService:
		state.Lines = dropLine(state.Lines, e.ServiceID)
		return recalc(state)

	case SetQuantity:
		if e.Quantity <= 0 {
			state.Lines = dropLine(state.Lines, e.ServiceID)
			return recalc(state)
		}
		lines := cloneLines(state.Lines)
		for i := range lines {
			if lines[i].Service.ID == e.ServiceID {
				lines[i].Quantity = e.Quantity
				lines[i].LineTotal = mustPrice(lines[i].Service, e.Quantity)
			}
		}
		state.Lines = lines
		return recalc(state)

	case AddAddon:
		for _, addon := range state.Addons {
			if addon.ID == e.Addon.ID {
				return state
			}
		}
		addons := make([]model.AddonService, len(state.Addons), len(state.Addons)+1)
		copy(addons, state.Addons)
		state.Addons = append(addons, e.Addon)
		return recalc(state)

	case RemoveAddon:
		addons := make([]model.AddonService, 0, len(state.Addons))
		for _, addon := range state.Addons {
			if addon.ID != e.AddonID {
				addons = append(addons, addon)
			}
		}
		state.Addons = addons
		return recalc(state)

	case SetAddress:
		state.Address = e.Address
		return state

	case SetDescription:
		state.Description = e.Description
		return state

	case SetStartDate:
		state.StartDate = e.StartDate
		return state

	case Reset:
		return State{}

	default:
		return state
	}
}

// Reduce folds a sequence of events over an initial state.
func Reduce(state State, events ...Event) State {
	for _, event := range events {
		state = Apply(state, event)
	}
	return state
}

func recalc(state State) State {
	state.Totals = pricing.ComputeTotals(state.Lines, state.Addons)
	return state
}

func cloneLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}

func dropLine(lines []model.CartLine, serviceID uuid.UUID) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Service.ID != serviceID {
			out = append(out, line)
		}
	}
	return out
}

// mustPrice is safe here: the reducer only prices quantities it has
// already checked to be positive.
func mustPrice(svc model.Service, quantity int) decimal.Decimal {
	total, err := pricing.PriceLine(svc, quantity)
	if err != nil {
		panic(err)
	}
	return total
}
