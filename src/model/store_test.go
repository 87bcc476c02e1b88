package model

import (
	"context"
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/database"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/processors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db, "../../db/migrations"))
	return db
}

func TestCountryStore_GetCountryByName(t *testing.T) {
	store := NewCountryStore(newTestDB(t))
	ctx := context.Background()

	c, err := store.GetCountryByName(ctx, "  germany ")
	require.NoError(t, err)
	assert.Equal(t, "Germany", c.CountryName)
	assert.Equal(t, "EUR", c.Currency)
	assert.Equal(t, "DE", c.ISOCode)
	assert.False(t, c.CreatedAt.IsZero())

	dt, known := c.DutyType()
	assert.True(t, known)
	assert.Equal(t, models.DutyTypeGeneral, dt)

	_, err = store.GetCountryByName(ctx, "Atlantis")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCountryStore_GetAndList(t *testing.T) {
	store := NewCountryStore(newTestDB(t))
	ctx := context.Background()

	all, err := store.ListCountries(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, "Canada", all[0].CountryName, "countries are ordered by name")

	filtered, err := store.ListCountries(ctx, "an")
	require.NoError(t, err)
	names := make([]string, 0, len(filtered))
	for _, c := range filtered {
		names = append(names, c.CountryName)
	}
	assert.Equal(t, []string{"Canada", "Germany"}, names)

	cuba, err := store.GetCountryByName(ctx, "Cuba")
	require.NoError(t, err)
	byID, err := store.GetCountryByID(ctx, cuba.ID)
	require.NoError(t, err)
	assert.Equal(t, "Column2", byID.Status)
	assert.Empty(t, byID.EligibilityCriteria)

	_, err = store.GetCountryByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductStore_Lookups(t *testing.T) {
	store := NewProductStore(newTestDB(t))
	ctx := context.Background()

	all, err := store.ListProducts(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2204.21.50", all[0].HTSCode, "products are ordered by HTS code")

	byIDs, err := store.GetProductsByIDs(ctx, []int64{all[1].ID, all[3].ID, 9999})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)
	assert.Contains(t, byIDs, all[1].ID)
	assert.NotContains(t, byIDs, int64(9999))

	empty, err := store.GetProductsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	shirts, err := store.ListProducts(ctx, "t-shirt", 10)
	require.NoError(t, err)
	require.Len(t, shirts, 1)
	assert.Equal(t, "16.5%", shirts[0].GeneralRateOfDuty)
	assert.Equal(t, "Free", shirts[0].SpecialRateOfDuty)
	assert.Equal(t, "90%", shirts[0].Column2RateOfDuty)
	assert.Equal(t, 61, shirts[0].Chapter)
	assert.Nil(t, shirts[0].LastUpdated)

	byHTS, err := store.ListProducts(ctx, "8517", 10)
	require.NoError(t, err)
	require.Len(t, byHTS, 1)
	assert.Equal(t, "Smartphones", byHTS[0].Name)

	limited, err := store.ListProducts(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	p, err := store.GetProductByID(ctx, shirts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "6109.10.00", p.HTSCode)

	_, err = store.GetProductByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCalculationStore_InsertGetList(t *testing.T) {
	store := NewCalculationStore(newTestDB(t))
	ctx := context.Background()

	first := &models.SavedCalculation{
		Reference: "ref-1",
		Shipment:  models.Shipment{OriginCountry: "United States", DestinationCountry: "Germany", OriginCurrency: "USD", DestCurrency: "EUR"},
		Products: []models.EnrichedProductLine{
			{ProductID: "4", HTSCode: "7318.15.20", Quantity: 10, UnitPriceOrigin: 5, TotalLandCostOrigin: 63},
		},
		Charges:           models.Charges{Freight: 10},
		TotalLandedOrigin: 63,
		TotalLandedDest:   57.96,
		ForexRate:         0.92,
		DutyTotalOrigin:   3,
		DutyTotalDest:     2.76,
	}
	require.NoError(t, store.Insert(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Equal(t, "anonymous", first.UserID)
	assert.WithinDuration(t, time.Now(), first.CreatedAt, time.Minute)

	second := &models.SavedCalculation{Reference: "ref-2", UserID: "analyst"}
	require.NoError(t, store.Insert(ctx, second))

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got.Reference)
	assert.Equal(t, first.Shipment, got.Shipment)
	assert.Equal(t, first.Products, got.Products)
	assert.Equal(t, first.Charges, got.Charges)
	assert.Equal(t, 57.96, got.TotalLandedDest)
	assert.Equal(t, 0.92, got.ForexRate)

	list, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ref-2", list[0].Reference, "newest first")
	assert.Empty(t, list[0].Products)

	err = store.Insert(ctx, &models.SavedCalculation{Reference: "ref-1"})
	assert.Error(t, err, "references are unique")

	_, err = store.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCalculationStore_ListLimit(t *testing.T) {
	store := NewCalculationStore(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < DefaultCalculationListLimit+5; i++ {
		require.NoError(t, store.Insert(ctx, &models.SavedCalculation{Reference: "ref-" + strconv.Itoa(i)}))
	}

	list, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, DefaultCalculationListLimit)

	list, err = store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = store.List(ctx, MaxCalculationListLimit+1)
	require.NoError(t, err)
	assert.Len(t, list, DefaultCalculationListLimit+5, "an oversized limit is clamped, not reset")
}

type staticRate float64

func (r staticRate) GetRate(ctx context.Context, date, from, to string) (float64, error) {
	return float64(r), nil
}

func TestStores_BackTheCalculator(t *testing.T) {
	db := newTestDB(t)
	products := NewProductStore(db)
	ctx := context.Background()

	bolts, err := products.ListProducts(ctx, "7318", 1)
	require.NoError(t, err)
	require.Len(t, bolts, 1)

	calc := processors.NewLandedCostCalculator(NewCountryStore(db), products, staticRate(0.92), time.Second)
	res, err := calc.Calculate(ctx, &models.CalculationRequest{
		Shipment: models.Shipment{
			OriginCountry:      "united states",
			DestinationCountry: "Germany",
			OriginCurrency:     "USD",
			DestCurrency:       "EUR",
			ForexDate:          "2024-01-15",
		},
		Charges: models.Charges{Freight: 10},
		Products: []models.ProductLine{
			{ProductID: models.ProductID(strconv.FormatInt(bolts[0].ID, 10)), Quantity: 10, UnitPrice: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "United States", res.ShipmentSummary.Origin)
	assert.InDelta(t, 63, res.Totals.TotalLandCostOrigin, 1e-9)
	assert.InDelta(t, 63*0.92, res.Totals.TotalLandCostDest, 1e-9)

	// India has Special status; the special column of the smartphones row is "Free".
	phones, err := products.ListProducts(ctx, "8517", 1)
	require.NoError(t, err)
	res, err = calc.Calculate(ctx, &models.CalculationRequest{
		Shipment: models.Shipment{OriginCountry: "India", DestinationCountry: "United States", OriginCurrency: "USD", DestCurrency: "USD"},
		Products: []models.ProductLine{{ProductID: models.ProductID(strconv.FormatInt(phones[0].ID, 10)), Quantity: 2, UnitPrice: 300}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DutyTypeSpecial, res.ShipmentSummary.DutyType)
	assert.Zero(t, res.Totals.DutyOrigin)
	assert.InDelta(t, 600, res.Totals.TotalLandCostOrigin, 1e-9)
}
