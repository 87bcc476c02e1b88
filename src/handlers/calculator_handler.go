package handlers

import (
	"net/http"
	"time"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/security/validation"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/services"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/utils"
)

type CalculatorHandler struct {
	calculationService services.CalculationService
	production         bool
}

func NewCalculatorHandler(service services.CalculationService, production bool) *CalculatorHandler {
	return &CalculatorHandler{calculationService: service, production: production}
}

func (h *CalculatorHandler) HandlePing(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, r, http.StatusOK, map[string]string{
		"status": "calculator-ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// HandleRun computes a landed cost without storing it.
func (h *CalculatorHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req models.CalculationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return
	}

	if err := validation.PrepareCalculationRequest(&req); err != nil {
		writeCalculationError(w, r, err, h.production)
		return
	}

	logger.FromContext(r.Context()).Info("Handling calculator run",
		"originCountry", req.Shipment.OriginCountry,
		"destCountry", req.Shipment.DestinationCountry,
		"originCurrency", req.Shipment.OriginCurrency,
		"destCurrency", req.Shipment.DestCurrency,
		"forexDate", req.Shipment.ForexDate,
		"products", len(req.Products),
		"freight", req.Charges.Freight,
		"insurance", req.Charges.Insurance)

	result, err := h.calculationService.Run(r.Context(), &req)
	if err != nil {
		writeCalculationError(w, r, err, h.production)
		return
	}

	utils.SendJSON(w, r, http.StatusOK, result)
}
