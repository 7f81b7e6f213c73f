package rosterhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"diarias/internal/domain/roster"
	"diarias/internal/platform/requestctx"
	"diarias/internal/transport/http/api"
	"diarias/internal/transport/http/middleware"
	"diarias/internal/transport/http/shared"
)

type Handler struct {
	Service *roster.Service
}

func NewHandler(service *roster.Service) *Handler {
	return &Handler{Service: service}
}

type employeeRequest struct {
	Name          string          `json:"name"`
	ArtisticName  string          `json:"artisticName"`
	Level         string          `json:"level"`
	DailyRate     decimal.Decimal `json:"dailyRate"`
	PartyRate     decimal.Decimal `json:"partyRate"`
	ExtraHourRate decimal.Decimal `json:"extraHourRate"`
}

type rosterItem struct {
	roster.Employee
	MonthWorkDays []roster.WorkDay `json:"monthWorkDays"`
	MonthTotal    decimal.Decimal  `json:"monthTotal"`
}

func levelNames() []string {
	out := make([]string, 0, len(roster.Levels))
	for _, level := range roster.Levels {
		out = append(out, string(level))
	}
	return out
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())

	query := r.URL.Query()
	month := roster.CurrentMonth()
	if raw := query.Get("month"); raw != "" {
		parsed, err := roster.ParseMonth(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", requestID)
			return
		}
		month = parsed
	}

	sortBy := roster.SortKey(query.Get("sortBy"))
	if sortBy == "" {
		sortBy = roster.SortByName
	}
	if !sortBy.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_sort", "sortBy must be name, artisticName or level", requestID)
		return
	}
	order := strings.ToLower(query.Get("order"))
	if order != "" && order != "asc" && order != "desc" {
		api.Fail(w, http.StatusBadRequest, "invalid_order", "order must be asc or desc", requestID)
		return
	}

	employees, err := h.Service.Roster(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load roster", requestID)
		return
	}

	employees = roster.Filter(employees, query.Get("search"))
	roster.Sort(employees, sortBy, order == "desc")

	items := make([]rosterItem, 0, len(employees))
	for _, emp := range employees {
		days := roster.MonthWorkDays(emp, month)
		items = append(items, rosterItem{
			Employee:      emp,
			MonthWorkDays: days,
			MonthTotal:    roster.MonthTotal(days),
		})
	}

	api.Success(w, map[string]any{"month": month.String(), "employees": items}, requestID)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())

	fields, ok := h.decodeFields(w, r, requestID)
	if !ok {
		return
	}

	id, err := h.Service.Create(r.Context(), user.UserID, fields)
	if err != nil {
		h.failDomain(w, err, requestID)
		return
	}

	emp, err := h.Service.Employee(r.Context(), user.UserID, id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load employee", requestID)
		return
	}
	api.Created(w, emp, requestID)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	fields, ok := h.decodeFields(w, r, requestID)
	if !ok {
		return
	}

	if err := h.Service.UpdateFields(r.Context(), user.UserID, employeeID, fields); err != nil {
		h.failDomain(w, err, requestID)
		return
	}

	emp, err := h.Service.Employee(r.Context(), user.UserID, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if err := h.Service.Delete(r.Context(), user.UserID, employeeID); err != nil {
		h.failDomain(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}

func (h *Handler) HandleSaveMonth(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	month, err := roster.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", requestID)
		return
	}

	var selections map[string]roster.Selection
	if err := json.NewDecoder(r.Body).Decode(&selections); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	days, err := h.Service.SaveMonth(r.Context(), user.UserID, employeeID, selections, month)
	if err != nil {
		h.failDomain(w, err, requestID)
		return
	}

	api.Success(w, map[string]any{
		"month":      month.String(),
		"workDays":   days,
		"monthTotal": roster.MonthTotal(days),
	}, requestID)
}

func (h *Handler) HandleDeleteWorkDay(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	workDayID := chi.URLParam(r, "workDayID")

	if err := h.Service.DeleteWorkDay(r.Context(), user.UserID, employeeID, workDayID); err != nil {
		h.failDomain(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	month, err := roster.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", requestID)
		return
	}

	emp, err := h.Service.Employee(r.Context(), user.UserID, employeeID)
	if err != nil {
		h.failDomain(w, err, requestID)
		return
	}

	days := roster.MonthWorkDays(*emp, month)
	api.Success(w, map[string]any{
		"employeeId": emp.ID,
		"month":      month.String(),
		"workDays":   days,
		"monthTotal": roster.MonthTotal(days),
	}, requestID)
}

// HandleStream pushes full-roster snapshots over SSE. The first event is
// the current roster; later events follow confirmed mutations.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "stream_unsupported", "streaming unsupported", requestID)
		return
	}

	snapshots, cancel := h.Service.Subscribe(user.UserID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	initial, err := h.Service.Roster(r.Context(), user.UserID)
	if err != nil {
		// close the stream so the client reconnects instead of
		// waiting on a view that never arrives
		slog.Warn("roster stream initial snapshot failed", "userId", user.UserID, "err", err)
		return
	}
	writeSnapshot(w, initial)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, open := <-snapshots:
			if !open {
				return
			}
			writeSnapshot(w, snapshot)
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, employees []roster.Employee) {
	payload, err := json.Marshal(employees)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: roster\ndata: %s\n\n", payload)
}

func (h *Handler) decodeFields(w http.ResponseWriter, r *http.Request, requestID string) (roster.ScalarFields, bool) {
	var payload employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return roster.ScalarFields{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Enum("level", payload.Level, levelNames(), "unknown level")
	if payload.DailyRate.IsNegative() {
		v.Add("dailyRate", "must not be negative")
	}
	if payload.PartyRate.IsNegative() {
		v.Add("partyRate", "must not be negative")
	}
	if payload.ExtraHourRate.IsNegative() {
		v.Add("extraHourRate", "must not be negative")
	}
	if v.Reject(w, requestID) {
		return roster.ScalarFields{}, false
	}

	return roster.ScalarFields{
		Name:          payload.Name,
		ArtisticName:  payload.ArtisticName,
		Level:         roster.Level(strings.TrimSpace(payload.Level)),
		DailyRate:     payload.DailyRate,
		PartyRate:     payload.PartyRate,
		ExtraHourRate: payload.ExtraHourRate,
	}, true
}

func (h *Handler) failDomain(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, roster.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, roster.ErrWorkDayNotFound):
		api.Fail(w, http.StatusNotFound, "work_day_not_found", "work day not found", requestID)
	case errors.Is(err, roster.ErrArtisticNameTaken):
		api.Fail(w, http.StatusConflict, "artistic_name_taken", "artistic name already in use", requestID)
	case errors.Is(err, roster.ErrNameRequired),
		errors.Is(err, roster.ErrInvalidLevel),
		errors.Is(err, roster.ErrNegativeRate),
		errors.Is(err, roster.ErrInvalidMonth),
		errors.Is(err, roster.ErrInvalidDate),
		errors.Is(err, roster.ErrDateOutsideMonth),
		errors.Is(err, roster.ErrInvalidWorkDayType),
		errors.Is(err, roster.ErrNegativeExtraHours):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
	}
}
