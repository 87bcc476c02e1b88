package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- FAKES ---

type stubCalculator struct {
	result *models.CalculationResult
	err    error
	panic  interface{}
}

func (s *stubCalculator) Calculate(ctx context.Context, req *models.CalculationRequest) (*models.CalculationResult, error) {
	if s.panic != nil {
		panic(s.panic)
	}
	return s.result, s.err
}

type memoryCalculationStore struct {
	saved []*models.SavedCalculation
	err   error
}

func (m *memoryCalculationStore) Insert(ctx context.Context, calc *models.SavedCalculation) error {
	if m.err != nil {
		return m.err
	}
	calc.ID = int64(len(m.saved) + 1)
	m.saved = append(m.saved, calc)
	return nil
}

func (m *memoryCalculationStore) GetByID(ctx context.Context, id int64) (*models.SavedCalculation, error) {
	for _, c := range m.saved {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memoryCalculationStore) List(ctx context.Context, limit int) ([]models.SavedCalculation, error) {
	out := make([]models.SavedCalculation, 0, len(m.saved))
	for _, c := range m.saved {
		out = append(out, *c)
	}
	return out, nil
}

func sampleResult() *models.CalculationResult {
	return &models.CalculationResult{
		ShipmentSummary: models.ShipmentSummary{ForexRate: 0.923456},
		Products:        []models.EnrichedProductLine{{ProductID: "1", TotalLandCostOrigin: 63.004}},
		Totals: models.Totals{
			DutyOrigin:          3.004,
			DutyDest:            2.774,
			TotalLandCostOrigin: 63.004,
			TotalLandCostDest:   58.1833,
		},
		Warnings: []models.Warning{},
	}
}

func sampleRequest() *models.CalculationRequest {
	return &models.CalculationRequest{
		Shipment: models.Shipment{OriginCountry: "United States", DestinationCountry: "Germany"},
		Charges:  models.Charges{Freight: 10},
		Products: []models.ProductLine{{ProductID: "1", Quantity: 10, UnitPrice: 5}},
	}
}

// --- TESTS ---

func TestRun_ReturnsCalculatorResult(t *testing.T) {
	svc := NewCalculationService(&stubCalculator{result: sampleResult()}, nil)

	res, err := svc.Run(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, 63.004, res.Totals.TotalLandCostOrigin)
}

func TestRun_RecoversPanic(t *testing.T) {
	svc := NewCalculationService(&stubCalculator{panic: "index out of range"}, nil)

	res, err := svc.Run(context.Background(), sampleRequest())
	assert.Nil(t, res)
	require.Error(t, err)

	var ie *models.InternalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Calculation failed", ie.Message)
	assert.Equal(t, "index out of range", ie.Detail)
	assert.Contains(t, ie.Stack, "goroutine")
	assert.ErrorIs(t, err, models.ErrInternal)
}

func TestRun_AttachesStackToInternalErrors(t *testing.T) {
	svc := NewCalculationService(&stubCalculator{err: models.NewInternalError(errors.New("boom"), "")}, nil)

	_, err := svc.Run(context.Background(), sampleRequest())
	var ie *models.InternalError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "boom", ie.Detail)
	assert.NotEmpty(t, ie.Stack)
}

func TestRun_PassesThroughClientErrors(t *testing.T) {
	want := models.NewValidationError("no valid products processed")
	svc := NewCalculationService(&stubCalculator{err: want}, nil)

	_, err := svc.Run(context.Background(), sampleRequest())
	assert.Same(t, want, err)

	_, err = svc.Run(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestSave_StoresRoundedTotals(t *testing.T) {
	store := &memoryCalculationStore{}
	svc := NewCalculationService(&stubCalculator{result: sampleResult()}, store)

	saved, err := svc.Save(context.Background(), sampleRequest(), "")
	require.NoError(t, err)
	require.Len(t, store.saved, 1)

	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "anonymous", saved.UserID)
	_, err = uuid.Parse(saved.Reference)
	assert.NoError(t, err, "reference is a uuid")
	assert.Equal(t, 63.0, saved.TotalLandedOrigin)
	assert.Equal(t, 58.18, saved.TotalLandedDest)
	assert.Equal(t, 3.0, saved.DutyTotalOrigin)
	assert.Equal(t, 2.77, saved.DutyTotalDest)
	assert.Equal(t, 0.9235, saved.ForexRate)
	assert.Equal(t, "United States", saved.Shipment.OriginCountry)
	assert.Equal(t, 10.0, saved.Charges.Freight)
	assert.Len(t, saved.Products, 1)

	got, err := svc.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Reference, got.Reference)

	list, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSave_KeepsUserAndSurfacesErrors(t *testing.T) {
	store := &memoryCalculationStore{}
	svc := NewCalculationService(&stubCalculator{result: sampleResult()}, store)

	saved, err := svc.Save(context.Background(), sampleRequest(), "analyst")
	require.NoError(t, err)
	assert.Equal(t, "analyst", saved.UserID)

	// A failed calculation is not stored.
	svc = NewCalculationService(&stubCalculator{err: models.NewValidationError("missing countries or products")}, store)
	_, err = svc.Save(context.Background(), sampleRequest(), "")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Len(t, store.saved, 1)

	store.err = errors.New("disk full")
	svc = NewCalculationService(&stubCalculator{result: sampleResult()}, store)
	_, err = svc.Save(context.Background(), sampleRequest(), "")
	assert.ErrorContains(t, err, "disk full")
}

func TestService_WithoutStore(t *testing.T) {
	svc := NewCalculationService(&stubCalculator{result: sampleResult()}, nil)

	_, err := svc.Save(context.Background(), sampleRequest(), "")
	assert.Error(t, err)
	_, err = svc.Get(context.Background(), 1)
	assert.Error(t, err)
	_, err = svc.List(context.Background(), 1)
	assert.Error(t, err)
}
