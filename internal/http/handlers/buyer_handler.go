// Buyer HTTP handlers.
//
// This file exposes REST endpoints for buyer lead resources:
//   - POST   /buyers              (create)
//   - GET    /buyers              (list, filtered + paginated, ETag support)
//   - GET    /buyers/{id}         (fetch with recent history)
//   - PUT    /buyers/{id}         (full update, stale-write protected)
//   - PATCH  /buyers/{id}/status  (status-only transition)
//   - DELETE /buyers/{id}         (remove with cascading history)
//   - GET    /buyers/{id}/history (full audit trail, paginated)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leadstack/buyer-intake/internal/domain"
	"github.com/leadstack/buyer-intake/internal/repo"
	"github.com/leadstack/buyer-intake/internal/services"
	"github.com/leadstack/buyer-intake/internal/utils"
	"github.com/leadstack/buyer-intake/internal/validate"
)

//
// Service contracts (context-aware)
//

// BuyerService defines buyer lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type BuyerService interface {
	// Create validates and persists a new buyer owned by userID.
	Create(ctx context.Context, userID string, c validate.Candidate) (*domain.Buyer, error)
	// Get returns one buyer plus its most recent history entries.
	Get(ctx context.Context, id string) (*domain.Buyer, []domain.HistoryEntry, error)
	// List returns a filtered page of buyers and the total match count.
	List(ctx context.Context, f repo.BuyerFilter, page, pageSize int) ([]domain.Buyer, int64, error)
	// Update replaces a buyer's editable fields, guarding against stale writes.
	Update(ctx context.Context, userID, id string, c validate.Candidate, expectedUpdatedAt time.Time) (*domain.Buyer, error)
	// UpdateStatus applies a status-only transition.
	UpdateStatus(ctx context.Context, userID, id, status string, expectedUpdatedAt time.Time) (*domain.Buyer, error)
	// Delete removes a buyer owned by userID.
	Delete(ctx context.Context, userID, id string) error
	// History returns a page of the buyer's audit trail and the total count.
	History(ctx context.Context, id string, page, pageSize int) ([]domain.HistoryEntry, int64, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for buyers, CSV import, and CSV export.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	buyerSvc  BuyerService
	importSvc ImportService
	exportSvc ExportService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(buyerSvc BuyerService, importSvc ImportService, exportSvc ExportService) *Handlers {
	return &Handlers{buyerSvc: buyerSvc, importSvc: importSvc, exportSvc: exportSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// BuyerRequest is the JSON payload for creating or replacing a buyer.
//
// Field-level validation happens in the validate package so the API and the
// CSV importer reject bad input with identical messages; no gin binding tags
// here beyond JSON names.
type BuyerRequest struct {
	FullName     string   `json:"fullName" example:"Asha Verma"`
	Email        string   `json:"email" example:"asha@example.com"`
	Phone        string   `json:"phone" example:"9876543210"`
	City         string   `json:"city" example:"Mohali"`
	PropertyType string   `json:"propertyType" example:"Apartment"`
	BHK          string   `json:"bhk" example:"TWO"`
	Purpose      string   `json:"purpose" example:"Buy"`
	BudgetMin    *int64   `json:"budgetMin" example:"5000000"`
	BudgetMax    *int64   `json:"budgetMax" example:"6500000"`
	Timeline     string   `json:"timeline" example:"ZERO_TO_3M"`
	Source       string   `json:"source" example:"Website"`
	Notes        string   `json:"notes" example:"prefers corner unit"`
	Tags         []string `json:"tags"`
	// Status is optional on create (defaults to New).
	Status string `json:"status" example:"New"`
	// UpdatedAt is the concurrency token on updates: send the updatedAt you
	// last read, or omit it to write unconditionally.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// StatusRequest is the JSON payload for a status-only transition.
type StatusRequest struct {
	Status string `json:"status" example:"Qualified"`
	// UpdatedAt is the concurrency token, same semantics as on full updates.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListBuyersResponse wraps a page of buyers and pagination information.
type ListBuyersResponse struct {
	Buyers     []domain.Buyer `json:"buyers"`
	Pagination Pagination     `json:"pagination"`
}

// BuyerDetailResponse is one buyer plus its most recent changes.
type BuyerDetailResponse struct {
	Buyer   *domain.Buyer         `json:"buyer"`
	History []domain.HistoryEntry `json:"history"`
}

// HistoryResponse wraps a page of a buyer's audit trail.
type HistoryResponse struct {
	History    []domain.HistoryEntry `json:"history"`
	Pagination Pagination            `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// candidate maps the request body onto a validation candidate, trimming
// whitespace the same way the CSV importer does.
func (r BuyerRequest) candidate() validate.Candidate {
	tags := make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return validate.Candidate{
		FullName:     strings.TrimSpace(r.FullName),
		Email:        strings.TrimSpace(r.Email),
		Phone:        strings.TrimSpace(r.Phone),
		City:         strings.TrimSpace(r.City),
		PropertyType: strings.TrimSpace(r.PropertyType),
		BHK:          strings.TrimSpace(r.BHK),
		Purpose:      strings.TrimSpace(r.Purpose),
		BudgetMin:    r.BudgetMin,
		BudgetMax:    r.BudgetMax,
		Timeline:     strings.TrimSpace(r.Timeline),
		Source:       strings.TrimSpace(r.Source),
		Notes:        strings.TrimSpace(r.Notes),
		Tags:         tags,
		Status:       strings.TrimSpace(r.Status),
	}
}

// expectedUpdatedAt unwraps the concurrency token; zero means unconditional.
func expectedUpdatedAt(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// filterParams collects the list/export filter query parameters.
func filterParams(c *gin.Context) services.FilterParams {
	return services.FilterParams{
		Query:        c.Query("q"),
		City:         c.Query("city"),
		PropertyType: c.Query("propertyType"),
		Status:       c.Query("status"),
		Timeline:     c.Query("timeline"),
	}
}

// failBuyerMutation translates service errors shared by the mutating
// endpoints; it returns false when err was nil.
func failBuyerMutation(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	var ferr *validate.FieldError
	switch {
	case errors.As(err, &ferr):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, ferr.Message)
	case errors.Is(err, services.ErrBuyerNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "buyer not found")
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, services.ErrForbidden.Error())
	case errors.Is(err, services.ErrStaleRecord):
		fail(c, http.StatusConflict, ErrCodeConflict, "Record changed, please refresh")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
	return true
}

//
// Handlers
//

// CreateBuyer godoc
// @ID          createBuyer
// @Summary     Create a buyer lead
// @Description Validates and stores a new buyer owned by the current user, recording a creation history entry.
// @Tags        Buyers
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(agent-7)
// @Param       body       body    handlers.BuyerRequest  true  "Buyer payload"
//
// @Success     201  {object}  domain.Buyer
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     429  {object}  handlers.ErrorResponse  "Create quota exhausted"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /buyers [post]
func (h *Handlers) CreateBuyer(c *gin.Context) {
	var req BuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	b, err := h.buyerSvc.Create(c.Request.Context(), userID(c), req.candidate())
	if failBuyerMutation(c, err) {
		return
	}
	ok(c, http.StatusCreated, b)
}

// ListBuyers godoc
// @ID          listBuyers
// @Summary     List buyers (filtered, paginated)
// @Description Returns a page of buyers ordered by last update. Supports search and enum filters, plus weak ETag via If-None-Match.
// @Tags        Buyers
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"buyers:3:1712912400000\")
// @Param       q              query   string  false "Search across name, phone, email, and other text columns"
// @Param       city           query   string  false "Filter by city"          Enums(Chandigarh, Mohali, Zirakpur, Panchkula, Other)
// @Param       propertyType   query   string  false "Filter by property type" Enums(Apartment, Villa, Plot, Office, Retail)
// @Param       status         query   string  false "Filter by status"
// @Param       timeline       query   string  false "Filter by timeline"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListBuyersResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Unknown filter value"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /buyers [get]
func (h *Handlers) ListBuyers(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	f, err := services.ParseFilter(filterParams(c))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.buyerSvc.(*services.BuyerService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.BuyersStats(ctx, db, f)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixMilli()
			}
			etag := fmt.Sprintf(`W/"buyers:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	// Fetch page.
	items, total, err := h.buyerSvc.List(ctx, f, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if items == nil {
		items = []domain.Buyer{}
	}

	totalPages := utils.PageCount(total, pageSize)
	resp := ListBuyersResponse{
		Buyers: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// GetBuyer godoc
// @ID          getBuyer
// @Summary     Fetch one buyer
// @Description Returns a buyer and its most recent history entries.
// @Tags        Buyers
// @Produce     json
//
// @Param       id  path  string  true  "Buyer ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.BuyerDetailResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Buyer not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /buyers/{id} [get]
func (h *Handlers) GetBuyer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "buyer id must be a UUID")
		return
	}

	b, hist, err := h.buyerSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBuyerNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "buyer not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if hist == nil {
		hist = []domain.HistoryEntry{}
	}
	ok(c, http.StatusOK, BuyerDetailResponse{Buyer: b, History: hist})
}

// UpdateBuyer godoc
// @ID          updateBuyer
// @Summary     Update a buyer lead
// @Description Replaces the editable fields of a buyer owned by the current user. Send the last-seen updatedAt as the concurrency token; a mismatch returns 409.
// @Tags        Buyers
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(agent-7)
// @Param       id         path    string  true  "Buyer ID (UUID)"        format(uuid)
// @Param       body       body    handlers.BuyerRequest  true  "Replacement payload"
//
// @Success     200  {object} domain.Buyer
// @Failure     400  {object} handlers.ErrorResponse "Validation failed"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Buyer not found"
// @Failure     409  {object} handlers.ErrorResponse "Record changed, please refresh"
// @Failure     429  {object} handlers.ErrorResponse "Update quota exhausted"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /buyers/{id} [put]
func (h *Handlers) UpdateBuyer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "buyer id must be a UUID")
		return
	}

	var req BuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	b, err := h.buyerSvc.Update(c.Request.Context(), userID(c), id, req.candidate(), expectedUpdatedAt(req.UpdatedAt))
	if failBuyerMutation(c, err) {
		return
	}
	ok(c, http.StatusOK, b)
}

// UpdateBuyerStatus godoc
// @ID          updateBuyerStatus
// @Summary     Change a buyer's status
// @Description Applies a status-only transition (New, Qualified, Contacted, Visited, Negotiation, Converted, Dropped) and records it in history. Re-applying the current status is a no-op.
// @Tags        Buyers
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(agent-7)
// @Param       id         path    string  true  "Buyer ID (UUID)"        format(uuid)
// @Param       body       body    handlers.StatusRequest  true  "New status"
//
// @Success     200  {object} domain.Buyer
// @Failure     400  {object} handlers.ErrorResponse "Unknown status"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Buyer not found"
// @Failure     409  {object} handlers.ErrorResponse "Record changed, please refresh"
// @Failure     429  {object} handlers.ErrorResponse "Update quota exhausted"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /buyers/{id}/status [patch]
func (h *Handlers) UpdateBuyerStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "buyer id must be a UUID")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	b, err := h.buyerSvc.UpdateStatus(c.Request.Context(), userID(c), id,
		strings.TrimSpace(req.Status), expectedUpdatedAt(req.UpdatedAt))
	if failBuyerMutation(c, err) {
		return
	}
	ok(c, http.StatusOK, b)
}

// DeleteBuyer godoc
// @ID          deleteBuyer
// @Summary     Delete a buyer lead
// @Description Removes a buyer owned by the current user; its history is removed with it.
// @Tags        Buyers
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(agent-7)
// @Param       id         path    string  true  "Buyer ID (UUID)"        format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "Buyer not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /buyers/{id} [delete]
func (h *Handlers) DeleteBuyer(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "buyer id must be a UUID")
		return
	}

	if failBuyerMutation(c, h.buyerSvc.Delete(c.Request.Context(), userID(c), id)) {
		return
	}
	noContent(c)
}

// ListBuyerHistory godoc
// @ID          listBuyerHistory
// @Summary     List a buyer's change history
// @Description Returns the buyer's audit trail, newest first, paginated.
// @Tags        Buyers
// @Produce     json
//
// @Param       id         path   string  true  "Buyer ID (UUID)"  format(uuid)
// @Param       page       query  int     false "Page number"      minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"   minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.HistoryResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Buyer not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /buyers/{id}/history [get]
func (h *Handlers) ListBuyerHistory(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "buyer id must be a UUID")
		return
	}
	page, pageSize := clampPagination(c)

	items, total, err := h.buyerSvc.History(c.Request.Context(), id, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrBuyerNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "buyer not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if items == nil {
		items = []domain.HistoryEntry{}
	}

	totalPages := utils.PageCount(total, pageSize)
	resp := HistoryResponse{
		History: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}
