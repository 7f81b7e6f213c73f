package exporthandler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"diarias/internal/domain/export"
	"diarias/internal/domain/roster"
	"diarias/internal/platform/requestctx"
	"diarias/internal/transport/http/api"
	"diarias/internal/transport/http/middleware"
)

type Handler struct {
	Service *roster.Service
}

func NewHandler(service *roster.Service) *Handler {
	return &Handler{Service: service}
}

// HandleExport streams the month summary as a spreadsheet or PDF file.
// An empty month is a soft notice, not a download.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := requestctx.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	month, err := roster.ParseMonth(chi.URLParam(r, "month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", requestID)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "pdf" {
		api.Fail(w, http.StatusBadRequest, "invalid_format", "format must be xlsx or pdf", requestID)
		return
	}

	emp, err := h.Service.Employee(r.Context(), user.UserID, employeeID)
	if err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to load employee", requestID)
		return
	}

	summary, err := export.BuildSummary(*emp, month)
	if err != nil {
		if errors.Is(err, export.ErrNoWorkDays) {
			api.Fail(w, http.StatusUnprocessableEntity, "no_work_days", "no work days in the selected month", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to build summary", requestID)
		return
	}

	var buf bytes.Buffer
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if format == "pdf" {
		contentType = "application/pdf"
		err = export.WritePDF(&buf, summary)
	} else {
		err = export.WriteXLSX(&buf, summary)
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_error", "failed to render export", requestID)
		return
	}

	fileName := summary.FileName(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(fileName)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
