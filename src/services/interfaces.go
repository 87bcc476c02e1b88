// src/services/interfaces.go
package services

import (
	"context"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
)

// Calculator computes a landed-cost result for a request.
type Calculator interface {
	Calculate(ctx context.Context, req *models.CalculationRequest) (*models.CalculationResult, error)
}

// CalculationStore persists saved calculations.
type CalculationStore interface {
	Insert(ctx context.Context, calc *models.SavedCalculation) error
	GetByID(ctx context.Context, id int64) (*models.SavedCalculation, error)
	List(ctx context.Context, limit int) ([]models.SavedCalculation, error)
}

// CalculationService defines the landed-cost operations exposed to handlers.
type CalculationService interface {
	// Run computes a calculation without storing it.
	Run(ctx context.Context, req *models.CalculationRequest) (*models.CalculationResult, error)
	// Save computes a calculation and stores it under a new reference.
	Save(ctx context.Context, req *models.CalculationRequest, userID string) (*models.SavedCalculation, error)
	Get(ctx context.Context, id int64) (*models.SavedCalculation, error)
	List(ctx context.Context, limit int) ([]models.SavedCalculation, error)
}
