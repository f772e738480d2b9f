package controllers

import (
	"net/http"
	"resultsd/internal/providers"
	"resultsd/internal/services"
)

type AppConfigController struct {
	service services.AppConfigServiceInterface
}

func NewAppConfigController(service services.AppConfigServiceInterface) *AppConfigController {
	return &AppConfigController{service: service}
}

func (ac *AppConfigController) GetAppConfig(w http.ResponseWriter, r *http.Request) {
	providers.WriteJSON(w, http.StatusOK, ac.service.GetAppConfig())
}
