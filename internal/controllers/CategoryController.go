package controllers

import (
	"errors"
	"net/http"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/services"
)

type CategoryController struct {
	logger  providers.Logger
	service services.CategoryServiceInterface
}

func NewCategoryController(logger providers.Logger, service services.CategoryServiceInterface) *CategoryController {
	return &CategoryController{
		logger:  logger,
		service: service,
	}
}

type registerResponse struct {
	BaseResponse baseResponse        `json:"baseResponse"`
	Response     *models.CategoryKey `json:"response,omitempty"`
}

// RegisterKey reports collisions as a status-0 success, first write wins.
func (cc *CategoryController) RegisterKey(w http.ResponseWriter, r *http.Request) {
	var payload models.RegisterKeyRequest
	if err := decodeBody(w, r, &payload); err != nil {
		providers.WriteJSON(w, http.StatusBadRequest, registerResponse{BaseResponse: baseResponse{Message: "Invalid key or category"}})
		return
	}

	doc, err := cc.service.RegisterKey(r.Context(), payload.Key, payload.CategoryName)
	switch {
	case errors.Is(err, models.ErrAlreadyExists):
		providers.WriteJSON(w, http.StatusOK, registerResponse{BaseResponse: baseResponse{Message: "Key or Category already exists"}})
	case errors.Is(err, models.ErrInvalidRequest):
		providers.WriteJSON(w, http.StatusBadRequest, registerResponse{BaseResponse: baseResponse{Message: "Invalid key or category"}})
	case err != nil:
		writeStoreError(w, r, cc.logger, err)
	default:
		providers.WriteJSON(w, http.StatusOK, registerResponse{BaseResponse: baseResponse{Message: "Key Added successfully", Status: 1}, Response: doc})
	}
}

func (cc *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	data, err := cc.service.ListCategories(r.Context())
	if err != nil {
		writeStoreError(w, r, cc.logger, err)
		return
	}
	providers.WriteJSON(w, http.StatusOK, listResponse{BaseResponse: baseResponse{Message: "Fetch all", Status: 1}, Data: data})
}
