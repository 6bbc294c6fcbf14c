package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/casafacile/quote-service/internal/http/middleware"
	"github.com/casafacile/quote-service/internal/service"
)

type Handler struct {
	auth    *service.AuthService
	catalog *service.CatalogService
	quotes  *service.QuoteService
	log     zerolog.Logger
}

func NewHandler(auth *service.AuthService, catalog *service.CatalogService, quotes *service.QuoteService, log zerolog.Logger) *Handler {
	return &Handler{auth: auth, catalog: catalog, quotes: quotes, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	router.GET("/categories", h.listCategories)
	router.GET("/services", h.listServices)
	router.GET("/addons", h.listAddons)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.POST("/quotes", h.createQuote)
	protected.POST("/quotes/preview", h.previewQuote)
	protected.GET("/quotes", h.listQuotes)
	protected.GET("/quotes/export", h.exportQuotes)
	protected.GET("/quotes/:id", h.getQuote)
	protected.GET("/quotes/:id/pdf", h.quotePDF)
}

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  toUserResponse(result.User),
		"token": result.Token,
	})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponses(categories))
}

func (h *Handler) listServices(c *gin.Context) {
	var categoryName *string
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		categoryName = &raw
	}

	services, err := h.catalog.ListServices(c.Request.Context(), categoryName)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toServiceResponses(services))
}

func (h *Handler) listAddons(c *gin.Context) {
	var categoryIDs []uuid.UUID
	if raw := strings.TrimSpace(c.Query("category_ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_ids"})
				return
			}
			categoryIDs = append(categoryIDs, id)
		}
	}

	addons, err := h.catalog.ListAddons(c.Request.Context(), categoryIDs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAddonResponses(addons))
}

type quoteLineRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type quoteRequest struct {
	Services      []quoteLineRequest `json:"services"`
	AddonIDs      []string           `json:"addonIds"`
	Address       string             `json:"address"`
	Description   string             `json:"description"`
	WorkStartDate string             `json:"workStartDate"`
}

func (h *Handler) createQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines, addonIDs, startDate, err := parseQuoteRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.quotes.Submit(c.Request.Context(), service.SubmitQuoteInput{
		Principal:   principal,
		Lines:       lines,
		AddonIDs:    addonIDs,
		Address:     req.Address,
		Description: req.Description,
		StartDate:   startDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "quote created",
		"quote":   toQuoteResponse(*quote),
	})
}

func (h *Handler) previewQuote(c *gin.Context) {
	if _, ok := middleware.MustPrincipal(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines, addonIDs, startDate, err := parseQuoteRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quotes.Preview(c.Request.Context(), service.PreviewInput{
		Lines:       lines,
		AddonIDs:    addonIDs,
		Address:     req.Address,
		Description: req.Description,
		StartDate:   startDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPreviewResponse(*result))
}

func (h *Handler) listQuotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	quotes, err := h.quotes.ListQuotes(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]quoteResponse, 0, len(quotes))
	for _, quote := range quotes {
		responses = append(responses, toQuoteResponse(quote))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *Handler) getQuote(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	quote, err := h.quotes.GetQuote(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(*quote))
}

func (h *Handler) quotePDF(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	result, err := h.quotes.QuotePDF(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) exportQuotes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	result, err := h.quotes.ExportQuotes(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseQuoteRequest(req quoteRequest) ([]service.RequestedLine, []uuid.UUID, time.Time, error) {
	lines := make([]service.RequestedLine, 0, len(req.Services))
	for _, line := range req.Services {
		serviceID, err := uuid.Parse(strings.TrimSpace(line.ServiceID))
		if err != nil {
			return nil, nil, time.Time{}, errors.New("invalid service id")
		}
		lines = append(lines, service.RequestedLine{ServiceID: serviceID, Quantity: line.Quantity})
	}

	addonIDs := make([]uuid.UUID, 0, len(req.AddonIDs))
	for _, raw := range req.AddonIDs {
		addonID, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, nil, time.Time{}, errors.New("invalid addon id")
		}
		addonIDs = append(addonIDs, addonID)
	}

	var startDate time.Time
	if raw := strings.TrimSpace(req.WorkStartDate); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return nil, nil, time.Time{}, errors.New("invalid workStartDate")
		}
		startDate = parsed
	}

	return lines, addonIDs, startDate, nil
}

func parseDate(raw string) (time.Time, error) {
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}
