package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/services"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{ errors int }

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) { m.errors++ }
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockResultService struct {
	lastInput models.UpsertInput
	upsertDoc *models.Result
	upsertErr error
	entryDoc  *models.Result
	entryErr  error
	entryArgs []string
}

func (m *mockResultService) UpsertReading(_ context.Context, in models.UpsertInput) (*models.Result, error) {
	m.lastInput = in
	return m.upsertDoc, m.upsertErr
}

func (m *mockResultService) UpdateTimeEntry(_ context.Context, id, date, time string, number models.NumberString, next string) (*models.Result, error) {
	m.entryArgs = []string{id, date, time, number.String(), next}
	return m.entryDoc, m.entryErr
}

func (m *mockResultService) DeleteTimeEntry(_ context.Context, id, date, time string) (*models.Result, error) {
	m.entryArgs = []string{id, date, time}
	return m.entryDoc, m.entryErr
}

type mockFlatService struct {
	last    models.FlatUploadRequest
	outcome services.FlatOutcome
	err     error
}

func (m *mockFlatService) Upload(_ context.Context, req models.FlatUploadRequest) (*models.ResultFlat, services.FlatOutcome, error) {
	m.last = req
	if m.err != nil {
		return nil, 0, m.err
	}
	return &models.ResultFlat{CategoryName: req.CategoryName}, m.outcome, nil
}

type mockQueryService struct {
	data   json.RawMessage
	window *services.MonthWindow
	err    error
	args   []string
}

func (m *mockQueryService) FetchToday(_ context.Context) (json.RawMessage, error) {
	return m.data, m.err
}

func (m *mockQueryService) FetchMonth(_ context.Context) (json.RawMessage, error) {
	return m.data, m.err
}

func (m *mockQueryService) FetchMonthWindow(_ context.Context, selectedDate, category, mode string) (*services.MonthWindow, error) {
	m.args = []string{selectedDate, category, mode}
	return m.window, m.err
}

func (m *mockQueryService) FetchByDate(_ context.Context, category, date, mode string) (json.RawMessage, error) {
	m.args = []string{category, date, mode}
	return m.data, m.err
}

func (m *mockQueryService) FetchByID(_ context.Context, id string) (json.RawMessage, error) {
	m.args = []string{id}
	return m.data, m.err
}

// serve routes a single request through chi so URL params resolve.
func serve(method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(rr *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return out
}
