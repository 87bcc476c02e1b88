package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/security/validation"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/services"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/utils"
	"github.com/go-chi/chi/v5"
)

const userIDHeader = "X-User-ID"

// CalculationHandler serves saved calculations.
type CalculationHandler struct {
	calculationService services.CalculationService
	production         bool
}

func NewCalculationHandler(service services.CalculationService, production bool) *CalculationHandler {
	return &CalculationHandler{calculationService: service, production: production}
}

func (h *CalculationHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req models.CalculationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}
	if err := validation.PrepareCalculationRequest(&req); err != nil {
		writeCalculationError(w, r, err, h.production)
		return
	}

	userID := validation.CleanField(r.Header.Get(userIDHeader))
	saved, err := h.calculationService.Save(r.Context(), &req, userID)
	if err != nil {
		writeCalculationError(w, r, err, h.production)
		return
	}

	utils.SendJSON(w, r, http.StatusCreated, saved)
}

func (h *CalculationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := strings.TrimSpace(r.URL.Query().Get("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			utils.SendJSONError(w, r, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	calcs, err := h.calculationService.List(r.Context(), limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error listing calculations", "error", err)
		utils.SendJSONError(w, r, "Error listing calculations", http.StatusInternalServerError)
		return
	}
	if calcs == nil {
		calcs = []models.SavedCalculation{}
	}
	utils.SendJSON(w, r, http.StatusOK, calcs)
}

func (h *CalculationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	calc, err := h.calculationService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.SendJSONError(w, r, "Calculation not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Error retrieving calculation", "id", id, "error", err)
		utils.SendJSONError(w, r, "Error retrieving calculation", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, r, http.StatusOK, calc)
}

// parseIDParam reads the {id} route parameter. A false return means the
// error response was already written.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		utils.SendJSONError(w, r, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
