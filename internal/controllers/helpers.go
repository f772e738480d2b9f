package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"resultsd/internal/models"
	"resultsd/internal/providers"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type messageResponse struct {
	Message string `json:"message"`
}

type baseResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type dataResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type listResponse struct {
	BaseResponse baseResponse    `json:"baseResponse"`
	Data         json.RawMessage `json:"data"`
}

// decodeBody reads a size-limited JSON body into v and runs its validate tags.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", models.ErrInvalidRequest, err)
	}
	if err := providers.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %w", models.ErrInvalidRequest, err)
	}
	return nil
}

// writeStoreError answers the failures every handler shares: malformed
// input is the client's fault, anything else is a 500 logged on the
// request's channel.
func writeStoreError(w http.ResponseWriter, r *http.Request, logger providers.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidTimeFormat):
		providers.WriteJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid or missing time format"})
	case errors.Is(err, models.ErrInvalidRequest), errors.Is(err, models.ErrInvalidDateFormat):
		providers.WriteJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
	default:
		logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		providers.WriteJSON(w, http.StatusInternalServerError, messageResponse{Message: "Internal Server Error"})
	}
}
