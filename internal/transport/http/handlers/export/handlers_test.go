package exporthandler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"diarias/internal/domain/auth"
	"diarias/internal/domain/roster"
	"diarias/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type singleEmployeeStore struct {
	emp roster.Employee
}

func (s *singleEmployeeStore) ListEmployees(_ context.Context, _ string) ([]roster.Employee, error) {
	return []roster.Employee{s.emp}, nil
}

func (s *singleEmployeeStore) GetEmployee(_ context.Context, _, employeeID string) (*roster.Employee, error) {
	if employeeID != s.emp.ID {
		return nil, roster.ErrNotFound
	}
	copied := s.emp
	return &copied, nil
}

func (s *singleEmployeeStore) CreateEmployee(_ context.Context, _ string, _ roster.ScalarFields) (string, error) {
	return "", roster.ErrNotFound
}

func (s *singleEmployeeStore) UpdateScalarFields(_ context.Context, _, _ string, _ roster.ScalarFields) error {
	return roster.ErrNotFound
}

func (s *singleEmployeeStore) ReplaceWorkDays(_ context.Context, _, _ string, _ []roster.WorkDay) error {
	return roster.ErrNotFound
}

func (s *singleEmployeeStore) DeleteEmployee(_ context.Context, _, _ string) error {
	return roster.ErrNotFound
}

func (s *singleEmployeeStore) ArtisticNameTaken(_ context.Context, _, _, _ string) (bool, error) {
	return false, nil
}

func newTestRouter(store *singleEmployeeStore) http.Handler {
	service := roster.NewService(store, roster.NewNotifier())
	handler := NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	router.Get("/employees/{employeeID}/export/{month}", handler.HandleExport)
	return router
}

func authedRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "user-1", SessionID: "sess-1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func exportFixture() *singleEmployeeStore {
	return &singleEmployeeStore{emp: roster.Employee{
		ID:           "emp-1",
		Name:         "Maria Silva",
		ArtisticName: "Mari",
		Level:        roster.LevelRecreador,
		WorkDays: []roster.WorkDay{
			{ID: "2024-03-05", Date: "2024-03-05", Type: roster.WorkDayComum, Value: decimal.NewFromInt(100)},
			{ID: "2024-03-09", Date: "2024-03-09", Type: roster.WorkDayFesta, ExtraHours: 2, Value: decimal.NewFromInt(190)},
		},
	}}
}

func TestExportXLSX(t *testing.T) {
	router := newTestRouter(exportFixture())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "/employees/emp-1/export/2024-03?format=xlsx"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	rows, err := workbook.GetRows("Diarias")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// header + 2 days + TOTAL
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
}

func TestExportPDF(t *testing.T) {
	router := newTestRouter(exportFixture())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "/employees/emp-1/export/2024-03?format=pdf"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected a PDF payload")
	}
}

func TestExportEmptyMonthIsSoftNotice(t *testing.T) {
	router := newTestRouter(exportFixture())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "/employees/emp-1/export/2024-07"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no_work_days") {
		t.Fatalf("expected no_work_days error, got %s", rec.Body.String())
	}
}

func TestExportRejectsBadInput(t *testing.T) {
	router := newTestRouter(exportFixture())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "/employees/emp-1/export/2024-03?format=csv"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad format, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "/employees/missing/export/2024-03"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing employee, got %d", rec.Code)
	}
}
