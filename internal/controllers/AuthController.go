package controllers

import (
	"errors"
	"net/http"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/services"
)

type AuthController struct {
	logger  providers.Logger
	service services.AuthServiceInterface
}

func NewAuthController(logger providers.Logger, service services.AuthServiceInterface) *AuthController {
	return &AuthController{
		logger:  logger,
		service: service,
	}
}

type authCodeResponse struct {
	Message  string `json:"message"`
	AuthCode string `json:"authCode"`
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var payload models.LoginRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeStoreError(w, r, ac.logger, err)
		return
	}

	token, err := ac.service.Login(r.Context(), payload.Email, payload.Password)
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		providers.WriteJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid email or password"})
	case err != nil:
		ac.serverError(w, r, err)
	default:
		providers.WriteJSON(w, http.StatusOK, authCodeResponse{Message: "Login successful", AuthCode: token})
	}
}

func (ac *AuthController) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	var payload models.OTPRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeStoreError(w, r, ac.logger, err)
		return
	}

	err := ac.service.GenerateOTP(r.Context(), payload.Email)
	switch {
	case errors.Is(err, models.ErrNotFound):
		providers.WriteJSON(w, http.StatusNotFound, messageResponse{Message: "No user with that email"})
	case err != nil:
		ac.serverError(w, r, err)
	default:
		providers.WriteJSON(w, http.StatusOK, messageResponse{Message: "OTP generated successfully"})
	}
}

func (ac *AuthController) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var payload models.VerifyOTPRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeStoreError(w, r, ac.logger, err)
		return
	}

	err := ac.service.VerifyOTP(r.Context(), payload.Email, payload.OTP)
	switch {
	case errors.Is(err, models.ErrNotFound):
		providers.WriteJSON(w, http.StatusNotFound, messageResponse{Message: "User not found or wrong OTP"})
	case errors.Is(err, models.ErrOTPExpired):
		providers.WriteJSON(w, http.StatusBadRequest, messageResponse{Message: "OTP has expired"})
	case err != nil:
		ac.serverError(w, r, err)
	default:
		providers.WriteJSON(w, http.StatusOK, messageResponse{Message: "OTP verified successfully. Account activated."})
	}
}

func (ac *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload models.ResetPasswordRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeStoreError(w, r, ac.logger, err)
		return
	}

	token, err := ac.service.ResetPassword(r.Context(), payload.Email, payload.OldPassword, payload.NewPassword)
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		providers.WriteJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid email or password"})
	case err != nil:
		ac.serverError(w, r, err)
	default:
		providers.WriteJSON(w, http.StatusOK, authCodeResponse{Message: "Password reset successful", AuthCode: token})
	}
}

func (ac *AuthController) serverError(w http.ResponseWriter, r *http.Request, err error) {
	ac.logger.Errorf(providers.TypeAuth, "%s %s: %s", r.Method, r.URL.Path, err)
	providers.WriteJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server error"})
}
