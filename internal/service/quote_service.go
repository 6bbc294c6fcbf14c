package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casafacile/quote-service/internal/cart"
	"github.com/casafacile/quote-service/internal/model"
	"github.com/casafacile/quote-service/internal/schedule"
)

type CatalogStore interface {
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
	GetAddon(ctx context.Context, id uuid.UUID) (*model.AddonService, error)
}

type QuoteStore interface {
	Create(ctx context.Context, quote model.Quote) (*model.Quote, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Quote, error)
}

type OwnerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type PDFGenerator interface {
	Generate(quote model.Quote, owner model.User) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(quotes []model.Quote, owner model.User) ([]byte, error)
}

// QuoteService assembles submitted carts into persisted quotes. Prices and
// totals are always re-derived from the catalog on the server: nothing the
// client computed is trusted or even read.
type QuoteService struct {
	catalog CatalogStore
	quotes  QuoteStore
	owners  OwnerStore
	pdf     PDFGenerator
	excel   ExcelGenerator
	now     func() time.Time
}

func NewQuoteService(catalog CatalogStore, quotes QuoteStore, owners OwnerStore, pdf PDFGenerator, excel ExcelGenerator) *QuoteService {
	return &QuoteService{
		catalog: catalog,
		quotes:  quotes,
		owners:  owners,
		pdf:     pdf,
		excel:   excel,
		now:     time.Now,
	}
}

// RequestedLine is a client-chosen (service, quantity) pair. Quantity is
// the only client value used; the price comes from the catalog.
type RequestedLine struct {
	ServiceID uuid.UUID
	Quantity  int
}

type SubmitQuoteInput struct {
	Principal   model.Principal
	Lines       []RequestedLine
	AddonIDs    []uuid.UUID
	Address     string
	Description string
	StartDate   time.Time
}

// Submit validates the draft, re-resolves every selection against the
// catalog, computes authoritative totals and schedule, and persists the
// quote atomically. Returns the stored aggregate ready for display.
func (s *QuoteService) Submit(ctx context.Context, input SubmitQuoteInput) (*model.Quote, error) {
	if len(input.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, ErrMissingAddress
	}
	if input.StartDate.IsZero() {
		return nil, ErrMissingStartDate
	}

	startDate := dateOnly(input.StartDate)
	if !startDate.After(dateOnly(s.now())) {
		return nil, ErrStartDateInPast
	}

	state, err := s.buildCart(ctx, input.Lines, input.AddonIDs)
	if err != nil {
		return nil, err
	}

	workSchedule := schedule.Estimate(state.Lines, startDate)

	quote := model.Quote{
		UserID:           input.Principal.UserID,
		Status:           model.QuoteStatusPending,
		TotalAmount:      state.Totals.FinalTotal,
		WorkStartDate:    startDate,
		EstimatedEndDate: workSchedule.EndDate,
		Address:          strings.TrimSpace(input.Address),
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		quote.Description = &description
	}
	for _, line := range state.Lines {
		quote.Items = append(quote.Items, model.QuoteItem{
			ServiceID:  line.Service.ID,
			Quantity:   line.Quantity,
			UnitPrice:  line.Service.BasePrice.Round(2),
			TotalPrice: line.LineTotal,
		})
	}
	for _, addon := range state.Addons {
		quote.Addons = append(quote.Addons, model.QuoteAddon{
			AddonID: addon.ID,
			Price:   addon.Price.Round(2),
		})
	}

	saved, err := s.quotes.Create(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}

type PreviewInput struct {
	Lines       []RequestedLine
	AddonIDs    []uuid.UUID
	Address     string
	Description string
	StartDate   time.Time
}

// PreviewResult is the interactive mirror of a submission: live totals and
// an optional schedule, never persisted and never authoritative.
type PreviewResult struct {
	Lines    []model.CartLine
	Addons   []model.AddonService
	Totals   model.QuoteTotals
	Schedule *model.WorkSchedule
}

// Preview prices a draft without persisting it. The draft is folded
// through the same cart reducer and pricing engine the submission path
// uses, so the numbers a user sees while editing are the numbers Submit
// will store.
func (s *QuoteService) Preview(ctx context.Context, input PreviewInput) (*PreviewResult, error) {
	state, err := s.buildCart(ctx, input.Lines, input.AddonIDs)
	if err != nil {
		return nil, err
	}
	state = cart.Reduce(state,
		cart.SetAddress{Address: input.Address},
		cart.SetDescription{Description: input.Description},
		cart.SetStartDate{StartDate: input.StartDate},
	)

	result := &PreviewResult{
		Lines:  state.Lines,
		Addons: state.Addons,
		Totals: state.Totals,
	}
	if !state.StartDate.IsZero() {
		workSchedule := schedule.Estimate(state.Lines, dateOnly(state.StartDate))
		result.Schedule = &workSchedule
	}
	return result, nil
}

// buildCart resolves the requested identities server-side and folds them
// through the cart reducer, which merges duplicate lines and deduplicates
// add-on selections.
func (s *QuoteService) buildCart(ctx context.Context, lines []RequestedLine, addonIDs []uuid.UUID) (cart.State, error) {
	state := cart.State{}

	for _, requested := range lines {
		if requested.Quantity <= 0 {
			return cart.State{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		svc, err := s.catalog.GetService(ctx, requested.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return cart.State{}, ErrSelectionUnavailable
			}
			return cart.State{}, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		state = cart.Apply(state, cart.AddService{Service: *svc, Quantity: requested.Quantity})
	}

	for _, addonID := range addonIDs {
		addon, err := s.catalog.GetAddon(ctx, addonID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return cart.State{}, ErrSelectionUnavailable
			}
			return cart.State{}, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		state = cart.Apply(state, cart.AddAddon{Addon: *addon})
	}

	return state, nil
}

// ListQuotes returns the caller's quotes, newest first.
func (s *QuoteService) ListQuotes(ctx context.Context, principal model.Principal) ([]model.Quote, error) {
	quotes, err := s.quotes.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return quotes, nil
}

// GetQuote returns one quote; only the owner may read it.
func (s *QuoteService) GetQuote(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if quote.UserID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return quote, nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// QuotePDF renders one quote as a PDF document.
func (s *QuoteService) QuotePDF(ctx context.Context, principal model.Principal, id uuid.UUID) (*ExportResult, error) {
	quote, err := s.GetQuote(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.owners.GetByID(ctx, quote.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	content, err := s.pdf.Generate(*quote, *owner)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("preventivo-%s.pdf", shortID(quote.ID)),
		Content:  content,
	}, nil
}

// ExportQuotes renders all of the caller's quotes as an XLSX workbook.
func (s *QuoteService) ExportQuotes(ctx context.Context, principal model.Principal) (*ExportResult, error) {
	quotes, err := s.ListQuotes(ctx, principal)
	if err != nil {
		return nil, err
	}
	owner, err := s.owners.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	content, err := s.excel.Generate(quotes, *owner)
	if err != nil {
		return nil, err
	}
	name := sanitizeFileName(owner.LastName)
	if name == "" {
		name = shortID(owner.ID)
	}
	return &ExportResult{
		FileName: fmt.Sprintf("preventivi-%s-%s.xlsx", strings.ToLower(name), s.now().Format("20060102")),
		Content:  content,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func shortID(id uuid.UUID) string {
	return strings.Split(id.String(), "-")[0]
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
