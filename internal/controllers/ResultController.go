package controllers

import (
	"errors"
	"net/http"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/services"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

type ResultController struct {
	logger  providers.Logger
	results services.ResultServiceInterface
	flat    services.FlatResultServiceInterface
	queries services.QueryServiceInterface
}

func NewResultController(logger providers.Logger, results services.ResultServiceInterface, flat services.FlatResultServiceInterface, queries services.QueryServiceInterface) *ResultController {
	return &ResultController{
		logger:  logger,
		results: results,
		flat:    flat,
		queries: queries,
	}
}

type resultResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type duplicateResponse struct {
	Message    string   `json:"message"`
	Duplicates []string `json:"duplicates"`
}

type monthWindowResponse struct {
	BaseResponse baseResponse    `json:"baseResponse"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Data         json.RawMessage `json:"data"`
}

type byIDResponse struct {
	BaseResponse baseResponse `json:"baseResponse"`
	Response     any          `json:"response"`
}

type deleteResponse struct {
	Message string         `json:"message"`
	Updated *models.Result `json:"updated"`
}

func (rc *ResultController) CreateResult(w http.ResponseWriter, r *http.Request) {
	var payload models.ReadingRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}

	doc, err := rc.results.UpsertReading(r.Context(), payload.Input())
	var dup *models.DuplicateTimeError
	switch {
	case errors.As(err, &dup):
		providers.WriteJSON(w, http.StatusOK, duplicateResponse{Message: "Duplicate time(s) detected", Duplicates: dup.Times})
	case err != nil:
		writeStoreError(w, r, rc.logger, err)
	default:
		providers.WriteJSON(w, http.StatusOK, resultResponse{Message: "Result saved successfully", Data: doc})
	}
}

func (rc *ResultController) Upload(w http.ResponseWriter, r *http.Request) {
	var payload models.FlatUploadRequest
	if err := decodeBody(w, r, &payload); err != nil {
		providers.WriteJSON(w, http.StatusBadRequest, messageResponse{Message: "Missing required fields."})
		return
	}

	doc, outcome, err := rc.flat.Upload(r.Context(), payload)
	if err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}

	switch outcome {
	case services.FlatCreated:
		providers.WriteJSON(w, http.StatusCreated, resultResponse{Message: "New category created and result added.", Data: doc})
	case services.FlatUpdated:
		providers.WriteJSON(w, http.StatusOK, resultResponse{Message: "Existing result updated.", Data: doc})
	default:
		providers.WriteJSON(w, http.StatusOK, resultResponse{Message: "New result added to existing category.", Data: doc})
	}
}

func (rc *ResultController) FetchToday(w http.ResponseWriter, r *http.Request) {
	data, err := rc.queries.FetchToday(r.Context())
	if err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}
	providers.WriteJSON(w, http.StatusOK, dataResponse{Message: "Results fetched successfully", Data: data})
}

func (rc *ResultController) FetchMonth(w http.ResponseWriter, r *http.Request) {
	data, err := rc.queries.FetchMonth(r.Context())
	if err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}
	providers.WriteJSON(w, http.StatusOK, dataResponse{Message: "Results fetched successfully (current month only)", Data: data})
}

func (rc *ResultController) FetchMonthWindow(w http.ResponseWriter, r *http.Request) {
	window, err := rc.queries.FetchMonthWindow(r.Context(),
		chi.URLParam(r, "selectedDate"), chi.URLParam(r, "categoryname"), chi.URLParam(r, "mode"))
	if err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}
	providers.WriteJSON(w, http.StatusOK, monthWindowResponse{
		BaseResponse: baseResponse{Message: "Results fetched successfully", Status: 1},
		From:         window.From,
		To:           window.To,
		Data:         window.Data,
	})
}

// FetchByDate serves both the two- and three-segment routes; a missing
// mode reads the grouped model.
func (rc *ResultController) FetchByDate(w http.ResponseWriter, r *http.Request) {
	data, err := rc.queries.FetchByDate(r.Context(),
		chi.URLParam(r, "categoryname"), chi.URLParam(r, "date"), chi.URLParam(r, "mode"))
	if err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}
	providers.WriteJSON(w, http.StatusOK, listResponse{BaseResponse: baseResponse{Message: "Fetch all", Status: 1}, Data: data})
}

func (rc *ResultController) FetchByID(w http.ResponseWriter, r *http.Request) {
	data, err := rc.queries.FetchByID(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, models.ErrInvalidID):
		providers.WriteJSON(w, http.StatusBadRequest, byIDResponse{BaseResponse: baseResponse{Message: "INVALID_ID"}, Response: []any{}})
	case errors.Is(err, models.ErrNotFound):
		providers.WriteJSON(w, http.StatusNotFound, byIDResponse{BaseResponse: baseResponse{Message: "NOT_FOUND"}, Response: []any{}})
	case err != nil:
		writeStoreError(w, r, rc.logger, err)
	default:
		providers.WriteJSON(w, http.StatusOK, byIDResponse{BaseResponse: baseResponse{Message: "STATUS_OK", Status: 1}, Response: data})
	}
}

func (rc *ResultController) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var payload models.EntryUpdateRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}

	doc, err := rc.results.UpdateTimeEntry(r.Context(), chi.URLParam(r, "_id"), payload.Date, payload.Time, payload.Number, payload.NextResult)
	switch {
	case errors.Is(err, models.ErrInvalidID):
		providers.WriteJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid result id"})
	case errors.Is(err, models.ErrNotFound):
		providers.WriteJSON(w, http.StatusNotFound, messageResponse{Message: "No matching date/time entry found"})
	case err != nil:
		writeStoreError(w, r, rc.logger, err)
	default:
		providers.WriteJSON(w, http.StatusOK, resultResponse{Message: "Result updated successfully", Data: doc})
	}
}

func (rc *ResultController) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	var payload models.EntryDeleteRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeStoreError(w, r, rc.logger, err)
		return
	}

	doc, err := rc.results.DeleteTimeEntry(r.Context(), chi.URLParam(r, "id"), payload.Date, payload.Time)
	switch {
	case errors.Is(err, models.ErrInvalidID):
		providers.WriteJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid result id"})
	case errors.Is(err, models.ErrNotFound):
		providers.WriteJSON(w, http.StatusNotFound, messageResponse{Message: "No matching entry found"})
	case err != nil:
		writeStoreError(w, r, rc.logger, err)
	default:
		providers.WriteJSON(w, http.StatusOK, deleteResponse{Message: "Time entry deleted successfully", Updated: doc})
	}
}
