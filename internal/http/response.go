package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/casafacile/quote-service/internal/model"
	"github.com/casafacile/quote-service/internal/service"
)

const dateLayout = "2006-01-02"

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

type categoryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ServiceCount int64   `json:"serviceCount"`
}

func toCategoryResponses(categories []model.ServiceCategory) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, categoryResponse{
			ID:           category.ID.String(),
			Name:         category.Name,
			Description:  category.Description,
			ServiceCount: category.ServiceCount,
		})
	}
	return out
}

type serviceResponse struct {
	ID                string          `json:"id"`
	CategoryID        string          `json:"categoryId"`
	CategoryName      string          `json:"categoryName"`
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	BasePrice         decimal.Decimal `json:"basePrice"`
	Unit              string          `json:"unit"`
	EstimatedDuration float64         `json:"estimatedDuration"`
}

func toServiceResponse(svc model.Service) serviceResponse {
	return serviceResponse{
		ID:                svc.ID.String(),
		CategoryID:        svc.CategoryID.String(),
		CategoryName:      svc.Category.Name,
		Name:              svc.Name,
		Description:       svc.Description,
		BasePrice:         svc.BasePrice,
		Unit:              svc.Unit,
		EstimatedDuration: svc.EstimatedDuration,
	}
}

func toServiceResponses(services []model.Service) []serviceResponse {
	out := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, toServiceResponse(svc))
	}
	return out
}

type addonResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Price                 decimal.Decimal `json:"price"`
	ApplicableCategoryIDs []string        `json:"applicableToCategoryIds"`
}

func toAddonResponse(addon model.AddonService) addonResponse {
	categoryIDs := make([]string, 0, len(addon.ApplicableCategoryIDs))
	for _, id := range addon.ApplicableCategoryIDs {
		categoryIDs = append(categoryIDs, id.String())
	}
	return addonResponse{
		ID:                    addon.ID.String(),
		Name:                  addon.Name,
		Price:                 addon.Price,
		ApplicableCategoryIDs: categoryIDs,
	}
}

func toAddonResponses(addons []model.AddonService) []addonResponse {
	out := make([]addonResponse, 0, len(addons))
	for _, addon := range addons {
		out = append(out, toAddonResponse(addon))
	}
	return out
}

type quoteItemResponse struct {
	ID           string          `json:"id"`
	ServiceID    string          `json:"serviceId"`
	ServiceName  string          `json:"serviceName"`
	CategoryName string          `json:"categoryName"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

type quoteAddonResponse struct {
	ID      string          `json:"id"`
	AddonID string          `json:"addonId"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
}

type quoteResponse struct {
	ID               string               `json:"id"`
	Status           string               `json:"status"`
	TotalAmount      decimal.Decimal      `json:"totalAmount"`
	WorkStartDate    string               `json:"workStartDate"`
	EstimatedEndDate string               `json:"estimatedEndDate"`
	Address          string               `json:"address"`
	Description      *string              `json:"description,omitempty"`
	CreatedAt        string               `json:"createdAt"`
	Items            []quoteItemResponse  `json:"items"`
	Addons           []quoteAddonResponse `json:"addons"`
}

func toQuoteResponse(quote model.Quote) quoteResponse {
	items := make([]quoteItemResponse, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, quoteItemResponse{
			ID:           item.ID.String(),
			ServiceID:    item.ServiceID.String(),
			ServiceName:  item.Service.Name,
			CategoryName: item.Service.Category.Name,
			Unit:         item.Service.Unit,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
		})
	}

	addons := make([]quoteAddonResponse, 0, len(quote.Addons))
	for _, addon := range quote.Addons {
		addons = append(addons, quoteAddonResponse{
			ID:      addon.ID.String(),
			AddonID: addon.AddonID.String(),
			Name:    addon.Addon.Name,
			Price:   addon.Price,
		})
	}

	return quoteResponse{
		ID:               quote.ID.String(),
		Status:           string(quote.Status),
		TotalAmount:      quote.TotalAmount,
		WorkStartDate:    quote.WorkStartDate.Format(dateLayout),
		EstimatedEndDate: quote.EstimatedEndDate.Format(dateLayout),
		Address:          quote.Address,
		Description:      quote.Description,
		CreatedAt:        quote.CreatedAt.Format(time.RFC3339),
		Items:            items,
		Addons:           addons,
	}
}

type previewLineResponse struct {
	ServiceID   string          `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type totalsResponse struct {
	ServicesTotal decimal.Decimal `json:"servicesTotal"`
	AddonsTotal   decimal.Decimal `json:"addonsTotal"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
}

type scheduleResponse struct {
	TotalHours  float64 `json:"totalHours"`
	WorkingDays int     `json:"workingDays"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

type previewResponse struct {
	Lines    []previewLineResponse `json:"lines"`
	Addons   []addonResponse       `json:"addons"`
	Totals   totalsResponse        `json:"totals"`
	Schedule *scheduleResponse     `json:"schedule,omitempty"`
}

func toPreviewResponse(result service.PreviewResult) previewResponse {
	lines := make([]previewLineResponse, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, previewLineResponse{
			ServiceID:   line.Service.ID.String(),
			ServiceName: line.Service.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Service.BasePrice,
			LineTotal:   line.LineTotal,
		})
	}

	response := previewResponse{
		Lines:  lines,
		Addons: toAddonResponses(result.Addons),
		Totals: totalsResponse{
			ServicesTotal: result.Totals.ServicesTotal,
			AddonsTotal:   result.Totals.AddonsTotal,
			FinalTotal:    result.Totals.FinalTotal,
		},
	}
	if result.Schedule != nil {
		response.Schedule = &scheduleResponse{
			TotalHours:  result.Schedule.TotalHours,
			WorkingDays: result.Schedule.WorkingDays,
			StartDate:   result.Schedule.StartDate.Format(dateLayout),
			EndDate:     result.Schedule.EndDate.Format(dateLayout),
		}
	}
	return response
}
