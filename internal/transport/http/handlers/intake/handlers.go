package intakehandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payrolld/internal/dates"
	"payrolld/internal/domain/intake"
	"payrolld/internal/transport/http/api"
	"payrolld/internal/transport/http/middleware"
	"payrolld/internal/transport/http/shared"
)

// Handler exposes intake row ingestion and the resolved listings: each row
// comes back with missing identifiers, currencies and prior-pay figures
// backfilled and flagged.
type Handler struct {
	Resolver *intake.Resolver
}

func NewHandler(resolver *intake.Resolver) *Handler {
	return &Handler{Resolver: resolver}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/intake", func(r chi.Router) {
		r.Post("/new-hires", h.handleCreateNewHire)
		r.Post("/leavers", h.handleCreateLeaver)
		r.Post("/increments", h.handleCreateIncrement)
		r.Get("/new-hires", h.handleNewHires)
		r.Get("/leavers", h.handleLeavers)
		r.Get("/increments", h.handleIncrements)
	})
}

// decodePayload decodes an intake body with UseNumber so numeric date values
// keep their digits for the serial-vs-epoch heuristic.
func decodePayload(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(dst)
}

// normalizeDate coerces a raw payload date. An unreadable shape is not an
// error, the row just stores no date; the raw value is logged for triage.
func normalizeDate(field string, raw any) *time.Time {
	if raw == nil {
		return nil
	}
	normalized := dates.Normalize(raw)
	if normalized == nil {
		slog.Debug("unparseable intake date", "field", field, "raw", raw)
	}
	return normalized
}

func (h *Handler) monthAndCurrency(w http.ResponseWriter, r *http.Request) (time.Time, string, bool) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	v := shared.NewValidator()
	v.Required("month", query.Get("month"), "month is required")
	v.Required("currency", query.Get("currency"), "currency is required")
	var month time.Time
	if raw := query.Get("month"); raw != "" {
		month, _ = v.Month("month", raw)
	}
	if v.Reject(w, requestID) {
		return time.Time{}, "", false
	}
	return month, query.Get("currency"), true
}

type newHirePayload struct {
	Month       string   `json:"month"`
	Currency    string   `json:"currency"`
	EmployeeID  *int     `json:"employeeId"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	AgreedPay   *float64 `json:"agreedPay"`
	JoiningDate any      `json:"joiningDate"`
	Designation string   `json:"designation"`
}

func (h *Handler) handleCreateNewHire(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload newHirePayload
	if err := decodePayload(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("month", payload.Month, "month is required")
	v.Required("currency", payload.Currency, "currency is required")
	v.Required("fullName", payload.FullName, "full name is required")
	var month time.Time
	if payload.Month != "" {
		month, _ = v.Month("month", payload.Month)
	}
	if v.Reject(w, requestID) {
		return
	}

	row := intake.NewHireRow{
		Month:       month,
		Currency:    payload.Currency,
		EmployeeID:  payload.EmployeeID,
		FullName:    payload.FullName,
		Email:       payload.Email,
		AgreedPay:   payload.AgreedPay,
		JoiningDate: normalizeDate("joiningDate", payload.JoiningDate),
		Designation: payload.Designation,
	}
	if err := h.Resolver.CreateNewHire(r.Context(), &row); err != nil {
		api.Fail(w, http.StatusInternalServerError, "intake_create_failed", "failed to store new hire", requestID)
		return
	}
	api.Created(w, row, requestID)
}

type leaverPayload struct {
	Month       string   `json:"month"`
	Currency    string   `json:"currency"`
	EmployeeID  *int     `json:"employeeId"`
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	LeavingDate any      `json:"leavingDate"`
	LastPay     *float64 `json:"lastPay"`
}

func (h *Handler) handleCreateLeaver(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload leaverPayload
	if err := decodePayload(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	// Currency is optional here: leaver rows often arrive without one and
	// the resolver backfills it from the salary history.
	v := shared.NewValidator()
	v.Required("month", payload.Month, "month is required")
	v.Required("fullName", payload.FullName, "full name is required")
	var month time.Time
	if payload.Month != "" {
		month, _ = v.Month("month", payload.Month)
	}
	if v.Reject(w, requestID) {
		return
	}

	row := intake.LeaverRow{
		Month:       month,
		Currency:    payload.Currency,
		EmployeeID:  payload.EmployeeID,
		FullName:    payload.FullName,
		Email:       payload.Email,
		LeavingDate: normalizeDate("leavingDate", payload.LeavingDate),
		LastPay:     payload.LastPay,
	}
	if err := h.Resolver.CreateLeaver(r.Context(), &row); err != nil {
		api.Fail(w, http.StatusInternalServerError, "intake_create_failed", "failed to store leaver", requestID)
		return
	}
	api.Created(w, row, requestID)
}

type incrementPayload struct {
	Month         string   `json:"month"`
	Currency      string   `json:"currency"`
	EmployeeID    *int     `json:"employeeId"`
	FullName      string   `json:"fullName"`
	Email         string   `json:"email"`
	NewPay        *float64 `json:"newPay"`
	PreviousPay   *float64 `json:"previousPay"`
	EffectiveDate any      `json:"effectiveDate"`
}

func (h *Handler) handleCreateIncrement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload incrementPayload
	if err := decodePayload(r, &payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("month", payload.Month, "month is required")
	v.Required("currency", payload.Currency, "currency is required")
	v.Required("fullName", payload.FullName, "full name is required")
	var month time.Time
	if payload.Month != "" {
		month, _ = v.Month("month", payload.Month)
	}
	if v.Reject(w, requestID) {
		return
	}

	row := intake.IncrementRow{
		Month:         month,
		Currency:      payload.Currency,
		EmployeeID:    payload.EmployeeID,
		FullName:      payload.FullName,
		Email:         payload.Email,
		NewPay:        payload.NewPay,
		PreviousPay:   payload.PreviousPay,
		EffectiveDate: normalizeDate("effectiveDate", payload.EffectiveDate),
	}
	if err := h.Resolver.CreateIncrement(r.Context(), &row); err != nil {
		api.Fail(w, http.StatusInternalServerError, "intake_create_failed", "failed to store increment", requestID)
		return
	}
	api.Created(w, row, requestID)
}

func (h *Handler) handleNewHires(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, currency, ok := h.monthAndCurrency(w, r)
	if !ok {
		return
	}

	rows, err := h.Resolver.ListResolvedNewHires(r.Context(), month, currency)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "intake_list_failed", "failed to list new hires", requestID)
		return
	}
	api.Success(w, rows, requestID)
}

func (h *Handler) handleLeavers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, currency, ok := h.monthAndCurrency(w, r)
	if !ok {
		return
	}

	rows, err := h.Resolver.ListResolvedLeavers(r.Context(), month, currency)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "intake_list_failed", "failed to list leavers", requestID)
		return
	}
	api.Success(w, rows, requestID)
}

func (h *Handler) handleIncrements(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	month, currency, ok := h.monthAndCurrency(w, r)
	if !ok {
		return
	}

	rows, err := h.Resolver.ListResolvedIncrements(r.Context(), month, currency)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "intake_list_failed", "failed to list increments", requestID)
		return
	}
	api.Success(w, rows, requestID)
}
