// src/handlers/errors.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/utils"
)

type searchedCountries struct {
	Origin string `json:"origin"`
	Dest   string `json:"dest"`
}

type countryNotFoundResponse struct {
	Message     string            `json:"message"`
	OriginFound bool              `json:"originFound"`
	DestFound   bool              `json:"destFound"`
	Searched    searchedCountries `json:"searched"`
}

type internalErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Stack     string `json:"stack,omitempty"`
}

// decodeJSONBody decodes r's body into dst. A non-nil error is already
// written to w.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			utils.SendJSONError(w, r, fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesErr.Limit), http.StatusRequestEntityTooLarge)
		case errors.Is(err, io.EOF):
			utils.SendJSONError(w, r, "Request body must not be empty", http.StatusBadRequest)
		default:
			utils.SendJSONError(w, r, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		}
		return err
	}
	return nil
}

// writeCalculationError maps calculation errors to HTTP responses. Detail and
// stack are only exposed when production is false.
func writeCalculationError(w http.ResponseWriter, r *http.Request, err error, production bool) {
	log := logger.FromContext(r.Context())

	var validationErr *models.ValidationError
	var notFoundErr *models.CountryNotFoundError
	var internalErr *models.InternalError

	switch {
	case errors.As(err, &validationErr):
		log.Info("Calculation request rejected", "reason", validationErr.Message)
		utils.SendJSONError(w, r, validationErr.Message, http.StatusBadRequest)

	case errors.As(err, &notFoundErr):
		log.Info("Calculation country not found", "origin", notFoundErr.Origin, "destination", notFoundErr.Destination,
			"originFound", notFoundErr.OriginFound, "destFound", notFoundErr.DestFound)
		utils.SendJSON(w, r, http.StatusBadRequest, countryNotFoundResponse{
			Message:     "Country not found",
			OriginFound: notFoundErr.OriginFound,
			DestFound:   notFoundErr.DestFound,
			Searched:    searchedCountries{Origin: notFoundErr.Origin, Dest: notFoundErr.Destination},
		})

	default:
		resp := internalErrorResponse{Message: "Calculation failed"}
		resp.RequestID, _ = RequestIDFromContext(r.Context())
		if errors.As(err, &internalErr) {
			resp.Message = internalErr.Message
			if !production {
				resp.Detail = internalErr.Detail
				resp.Stack = internalErr.Stack
			}
		} else if !production {
			resp.Detail = err.Error()
		}
		log.Error("Calculation error", "error", err)
		utils.SendJSON(w, r, http.StatusInternalServerError, resp)
	}
}
