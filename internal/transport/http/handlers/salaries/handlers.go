package salarieshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"payrolld/internal/domain/payroll"
	"payrolld/internal/transport/http/api"
	"payrolld/internal/transport/http/middleware"
	"payrolld/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Post("/generate", h.handleGenerate)
		r.Get("/", h.handleList)
		r.Get("/{salaryID}", h.handleGet)
		r.Patch("/{salaryID}", h.handlePatch)
	})
}

type generatePayload struct {
	Month      string `json:"month"`
	Currency   string `json:"currency"`
	EmployeeID *int   `json:"employeeId"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload generatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("month", payload.Month, "month is required")
	v.Required("currency", payload.Currency, "currency is required")
	v.Enum("currency", payload.Currency, []string{payroll.CurrencyPKR, payroll.CurrencyUSD}, "must be PKR or USD")
	var month time.Time
	if payload.Month != "" {
		month, _ = v.Month("month", payload.Month)
	}
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.ComputeSalarySheet(r.Context(), month, payload.Currency, payload.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrMonthRequired), errors.Is(err, payroll.ErrCurrencyRequired):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "sheet_generate_failed", "failed to generate salary sheet", requestID)
		}
		return
	}
	api.Created(w, result, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	v := shared.NewValidator()
	filters := payroll.Filters{
		Currency: query.Get("currency"),
		Status:   query.Get("status"),
		Search:   query.Get("search"),
	}
	if raw := query.Get("month"); raw != "" {
		if month, ok := v.Month("month", raw); ok {
			filters.Month = &month
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	page := shared.ParsePagination(r, 50, 500)
	filters.Limit = page.Limit
	filters.Offset = page.Offset

	rows, total, err := h.Service.FetchSalaries(r.Context(), filters)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salaries_list_failed", "failed to list salaries", requestID)
		return
	}
	api.Success(w, map[string]any{
		"rows":   rows,
		"total":  total,
		"limit":  filters.Limit,
		"offset": filters.Offset,
	}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	salaryID, err := strconv.ParseInt(chi.URLParam(r, "salaryID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "salary id must be numeric", requestID)
		return
	}

	rec, err := h.Service.GetSalary(r.Context(), salaryID)
	if err != nil {
		if errors.Is(err, payroll.ErrRecordNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary record not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "salary_fetch_failed", "failed to fetch salary record", requestID)
		return
	}
	api.Success(w, rec, requestID)
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	salaryID, err := strconv.ParseInt(chi.URLParam(r, "salaryID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "salary id must be numeric", requestID)
		return
	}

	var patch payroll.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Service.PatchSalary(r.Context(), salaryID, patch)
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrNoPatchFields):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "no patchable fields in payload", requestID)
		case errors.Is(err, payroll.ErrRecordNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "salary record not found", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "salary_patch_failed", "failed to patch salary record", requestID)
		}
		return
	}
	api.Success(w, map[string]int64{"updated": updated}, requestID)
}
