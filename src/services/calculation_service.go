// src/services/calculation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/utils"
	"github.com/google/uuid"
)

const anonymousUser = "anonymous"

type calculationServiceImpl struct {
	calculator Calculator
	store      CalculationStore
}

// NewCalculationService wires a calculator and a store. store may be nil when
// only Run is needed.
func NewCalculationService(calculator Calculator, store CalculationStore) CalculationService {
	return &calculationServiceImpl{calculator: calculator, store: store}
}

func (s *calculationServiceImpl) Run(ctx context.Context, req *models.CalculationRequest) (result *models.CalculationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			logger.ErrorFromContext(ctx, "Panic during calculation", "panic", r, "stack", stack)
			ie := models.NewInternalError(fmt.Errorf("panic: %v", r), fmt.Sprint(r))
			ie.Stack = stack
			result, err = nil, ie
		}
	}()

	if req == nil {
		return nil, models.NewValidationError("missing countries or products")
	}

	result, err = s.calculator.Calculate(ctx, req)
	if err != nil {
		var ie *models.InternalError
		if errors.As(err, &ie) {
			if ie.Stack == "" {
				ie.Stack = string(debug.Stack())
			}
			logger.ErrorFromContext(ctx, "Calculation failed", "error", err)
		}
		return nil, err
	}
	return result, nil
}

func (s *calculationServiceImpl) Save(ctx context.Context, req *models.CalculationRequest, userID string) (*models.SavedCalculation, error) {
	if s.store == nil {
		return nil, errors.New("calculation store is not configured")
	}

	result, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(userID) == "" {
		userID = anonymousUser
	}

	calc := &models.SavedCalculation{
		Reference:         uuid.NewString(),
		UserID:            userID,
		Shipment:          req.Shipment,
		Products:          result.Products,
		Charges:           req.Charges,
		TotalLandedOrigin: utils.RoundFloat(result.Totals.TotalLandCostOrigin, 2),
		TotalLandedDest:   utils.RoundFloat(result.Totals.TotalLandCostDest, 2),
		ForexRate:         utils.RoundFloat(result.ShipmentSummary.ForexRate, 4),
		DutyTotalOrigin:   utils.RoundFloat(result.Totals.DutyOrigin, 2),
		DutyTotalDest:     utils.RoundFloat(result.Totals.DutyDest, 2),
	}
	if err := s.store.Insert(ctx, calc); err != nil {
		return nil, fmt.Errorf("saving calculation: %w", err)
	}

	logger.InfoFromContext(ctx, "Calculation saved", "id", calc.ID, "reference", calc.Reference, "userID", calc.UserID)
	return calc, nil
}

func (s *calculationServiceImpl) Get(ctx context.Context, id int64) (*models.SavedCalculation, error) {
	if s.store == nil {
		return nil, errors.New("calculation store is not configured")
	}
	return s.store.GetByID(ctx, id)
}

func (s *calculationServiceImpl) List(ctx context.Context, limit int) ([]models.SavedCalculation, error) {
	if s.store == nil {
		return nil, errors.New("calculation store is not configured")
	}
	return s.store.List(ctx, limit)
}
