// Registration HTTP handlers.
//
// This file exposes REST endpoints for the registration pipeline:
//   - POST /registrations          (validate, submit, queue when needed)
//   - GET  /registrations          (list confirmed, paginated)
//   - GET  /registrations/search   (keyword search over confirmed)
//   - GET  /registrations/last     (most recent confirmed registration)
//   - POST /registrations/drain    (retry every queued registration)
//   - PUT  /connectivity           (flip the online flag)
//   - GET  /backend/status         (active backend + queue depth)
//   - GET  /stats                  (aggregate local counters)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecopots/go-registration-backend/internal/domain"
	"github.com/ecopots/go-registration-backend/internal/repo"
	"github.com/ecopots/go-registration-backend/internal/search"
	"github.com/ecopots/go-registration-backend/internal/services"
	"github.com/ecopots/go-registration-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RegistrationService defines the submission pipeline operations consumed
// by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RegistrationService interface {
	// Submit validates, stamps, and delivers one registration.
	Submit(ctx context.Context, reg *domain.Registration) (*services.SubmissionResult, error)
	// SetOnline flips the connectivity flag; the offline → online
	// transition drains the retry queue.
	SetOnline(ctx context.Context, online bool) (*services.DrainReport, error)
	// Online reports the current connectivity flag.
	Online() bool
	// DrainQueue retries every queued registration in insertion order.
	DrainQueue(ctx context.Context) (*services.DrainReport, error)
	// Status reports the active backend and queue depth.
	Status(ctx context.Context) (*services.BackendStatus, error)
}

// StoreService defines the local-state operations consumed by HTTP handlers:
// drafts, material selection, the confirmed log, statistics, and reset.
type StoreService interface {
	SaveDraft(ctx context.Context, fields map[string]string) error
	Draft(ctx context.Context) (map[string]string, error)
	ClearDraft(ctx context.Context) error
	SelectMaterial(ctx context.Context, slug string) (*services.MaterialSelection, error)
	SelectedMaterial(ctx context.Context) (*services.MaterialSelection, error)
	LastSubmission(ctx context.Context) (*domain.Registration, error)
	Registrations(ctx context.Context, page, pageSize int) ([]domain.Registration, int64, error)
	Search(ctx context.Context, query string, k int) ([]search.Result, error)
	Stats(ctx context.Context) (*repo.Stats, error)
	ClearAll(ctx context.Context) error
}

// ExportService defines the download-rendering operations consumed by HTTP
// handlers.
type ExportService interface {
	WriteCSV(ctx context.Context, w io.Writer) (int, error)
	CSVFilename(now time.Time) string
	Summary(reg *domain.Registration) string
	SummaryFilename(reg *domain.Registration) string
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for registrations, local state, and
// exports. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	regSvc    RegistrationService
	storeSvc  StoreService
	exportSvc ExportService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(regSvc RegistrationService, storeSvc StoreService, exportSvc ExportService) *Handlers {
	return &Handlers{regSvc: regSvc, storeSvc: storeSvc, exportSvc: exportSvc}
}

//
// DTOs
//

// SubmitRegistrationRequest is the JSON payload for submitting a
// registration. Field names match the form's canonical wire names.
type SubmitRegistrationRequest struct {
	FullName         string `json:"full_name" example:"Priya Sharma"`
	RollNumber       string `json:"roll_number" example:"CS2023045"`
	Email            string `json:"email" example:"priya@college.edu"`
	Phone            string `json:"phone" example:"9876543210"`
	Department       string `json:"department" example:"CSE"`
	YearOfStudy      string `json:"year_of_study" example:"2nd Year"`
	SelectedMaterial string `json:"selected_material" example:"Plastic Bottles"`
	CraftDescription string `json:"craft_description" example:"Cutting bottles into hanging planters for the hostel balcony railing, painted with leftover acrylics."`
}

// toRegistration maps the request payload onto a domain registration. The
// derived fields stay empty; the service stamps them.
func (r *SubmitRegistrationRequest) toRegistration() *domain.Registration {
	return &domain.Registration{
		FullName:         r.FullName,
		RollNumber:       r.RollNumber,
		Email:            r.Email,
		Phone:            r.Phone,
		Department:       r.Department,
		YearOfStudy:      r.YearOfStudy,
		SelectedMaterial: r.SelectedMaterial,
		CraftDescription: r.CraftDescription,
	}
}

// ConnectivityRequest is the JSON payload for flipping the online flag.
type ConnectivityRequest struct {
	Online *bool `json:"online" binding:"required" example:"true"`
}

// ConnectivityResponse reports the new flag and, when the change drained
// the queue, the drain outcome.
type ConnectivityResponse struct {
	Online bool                  `json:"online"`
	Drain  *services.DrainReport `json:"drain,omitempty"`
}

// SelectMaterialRequest is the JSON payload for storing a material choice.
type SelectMaterialRequest struct {
	Slug string `json:"slug" binding:"required" example:"plastic-bottles"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListRegistrationsResponse wraps a page of confirmed registrations and
// pagination information.
type ListRegistrationsResponse struct {
	Registrations []domain.Registration `json:"registrations"`
	Pagination    Pagination            `json:"pagination"`
}

// StatsResponse couples the stored aggregate counters with the live
// connectivity flag.
type StatsResponse struct {
	repo.Stats
	Online bool `json:"online"`
}

// SearchRegistrationsResponse wraps ranked keyword-search matches.
type SearchRegistrationsResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
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
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// SubmitRegistration godoc
// @ID          submitRegistration
// @Summary     Submit a registration
// @Description Validates the form, stamps the registration, and delivers it through the configured backend. Offline submissions are queued and reported as accepted.
// @Tags        Registrations
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SubmitRegistrationRequest  true  "Registration payload"
//
// @Success     200  {object}  services.SubmissionResult
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /registrations [post]
func (h *Handlers) SubmitRegistration(c *gin.Context) {
	var req SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res, err := h.regSvc.Submit(c.Request.Context(), req.toRegistration())
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			failFields(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed,
				"registration rejected", ve.Fields)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeSubmitFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, res)
}

// ListRegistrations godoc
// @ID          listRegistrations
// @Summary     List confirmed registrations (paginated)
// @Description Returns a page of locally recorded confirmed registrations, newest first.
// @Tags        Registrations
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListRegistrationsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /registrations [get]
func (h *Handlers) ListRegistrations(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.storeSvc.Registrations(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListRegistrationsResponse{
		Registrations: items,
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

// SearchRegistrations godoc
// @ID          searchRegistrations
// @Summary     Keyword search over confirmed registrations
// @Description Ranks recorded registrations against the query by token overlap and returns the best matches.
// @Tags        Registrations
// @Produce     json
//
// @Param       q  query  string  true   "Search query"
// @Param       k  query  int     false  "Maximum results"  minimum(1) default(5)
//
// @Success     200  {object}  handlers.SearchRegistrationsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing query"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /registrations/search [get]
func (h *Handlers) SearchRegistrations(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter 'q' is required")
		return
	}
	k := utils.AtoiDefault(c.Query("k"), 5)

	results, err := h.storeSvc.Search(c.Request.Context(), q, k)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if results == nil {
		results = []search.Result{}
	}
	ok(c, http.StatusOK, SearchRegistrationsResponse{Query: q, Results: results})
}

// GetLastRegistration godoc
// @ID          getLastRegistration
// @Summary     Get the most recent confirmed registration
// @Tags        Registrations
// @Produce     json
//
// @Success     200  {object}  domain.Registration
// @Failure     404  {object}  handlers.ErrorResponse  "Nothing recorded yet"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /registrations/last [get]
func (h *Handlers) GetLastRegistration(c *gin.Context) {
	reg, err := h.storeSvc.LastSubmission(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no registration recorded yet")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, reg)
}

// DrainQueue godoc
// @ID          drainQueue
// @Summary     Retry every queued registration
// @Description Walks the retry queue in insertion order and reports how many entries were delivered.
// @Tags        Registrations
// @Produce     json
//
// @Success     200  {object}  services.DrainReport
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /registrations/drain [post]
func (h *Handlers) DrainQueue(c *gin.Context) {
	report, err := h.regSvc.DrainQueue(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, report)
}

// SetConnectivity godoc
// @ID          setConnectivity
// @Summary     Report a connectivity change
// @Description Flips the online flag. Coming back online drains the retry queue before the response is written.
// @Tags        Connectivity
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ConnectivityRequest  true  "New connectivity state"
//
// @Success     200  {object}  handlers.ConnectivityResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed JSON"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /connectivity [put]
func (h *Handlers) SetConnectivity(c *gin.Context) {
	var req ConnectivityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Online == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body must carry an online flag")
		return
	}

	report, err := h.regSvc.SetOnline(c.Request.Context(), *req.Online)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ConnectivityResponse{Online: *req.Online, Drain: report})
}

// BackendStatus godoc
// @ID          backendStatus
// @Summary     Report the active backend and queue depth
// @Tags        Connectivity
// @Produce     json
//
// @Success     200  {object}  services.BackendStatus
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /backend/status [get]
func (h *Handlers) BackendStatus(c *gin.Context) {
	st, err := h.regSvc.Status(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, st)
}

// GetStats godoc
// @ID          getStats
// @Summary     Aggregate local submission counters
// @Tags        Registrations
// @Produce     json
//
// @Success     200  {object}  handlers.StatsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /stats [get]
func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := h.storeSvc.Stats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, StatsResponse{Stats: *stats, Online: h.regSvc.Online()})
}
