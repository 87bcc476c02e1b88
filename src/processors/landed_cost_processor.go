package processors

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/logger"
	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/models"
	"golang.org/x/sync/errgroup"
)

// CountryLookup resolves a country by name. A missing country must be
// reported with an error wrapping models.ErrNotFound.
type CountryLookup interface {
	GetCountryByName(ctx context.Context, name string) (*models.Country, error)
}

// ProductLookup fetches product records by id. Unknown ids are left out of the map.
type ProductLookup interface {
	GetProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error)
}

// ForexLookup returns the rate converting one unit of from into to on date.
type ForexLookup interface {
	GetRate(ctx context.Context, date, from, to string) (float64, error)
}

// LandedCostCalculator computes customs value, duty and landed cost for a
// shipment. It holds no per-request state and is safe for concurrent use.
type LandedCostCalculator struct {
	countries    CountryLookup
	products     ProductLookup
	forex        ForexLookup
	forexTimeout time.Duration
}

func NewLandedCostCalculator(countries CountryLookup, products ProductLookup, forex ForexLookup, forexTimeout time.Duration) *LandedCostCalculator {
	return &LandedCostCalculator{
		countries:    countries,
		products:     products,
		forex:        forex,
		forexTimeout: forexTimeout,
	}
}

type validLine struct {
	input  models.ProductLine
	record models.Product
}

// Calculate runs the two-pass allocation over req.
func (c *LandedCostCalculator) Calculate(ctx context.Context, req *models.CalculationRequest) (*models.CalculationResult, error) {
	log := logger.FromContext(ctx)

	originName := strings.TrimSpace(req.Shipment.OriginCountry)
	destName := strings.TrimSpace(req.Shipment.DestinationCountry)
	if originName == "" || destName == "" || len(req.Products) == 0 {
		return nil, models.NewValidationError("missing countries or products")
	}

	var warnings []models.Warning

	// Collect the numeric product ids; anything else cannot resolve.
	ids := make([]int64, 0, len(req.Products))
	seen := make(map[int64]bool, len(req.Products))
	for _, line := range req.Products {
		if id, ok := line.ProductID.Int64(); ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var (
		origin, dest *models.Country
		records      map[int64]models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		origin, err = c.lookupCountry(gctx, originName)
		return err
	})
	g.Go(func() error {
		var err error
		dest, err = c.lookupCountry(gctx, destName)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = c.products.GetProductsByIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("fetching products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, models.NewInternalError(err, "")
	}

	if origin == nil || dest == nil {
		return nil, &models.CountryNotFoundError{
			Origin:      originName,
			Destination: destName,
			OriginFound: origin != nil,
			DestFound:   dest != nil,
		}
	}

	// Duty type comes from the origin country.
	dutyType, known := origin.DutyType()
	if !known {
		log.Warn("Unrecognised country status, using general duty", "country", origin.CountryName, "status", origin.Status)
		warnings = append(warnings, models.Warning{
			Code:    models.WarnDutyTypeDefaulted,
			Message: fmt.Sprintf("country status %q of %s is not recognised; general duty applied", origin.Status, origin.CountryName),
		})
	}

	originCurrency := normalizeCurrency(req.Shipment.OriginCurrency, origin.Currency)
	destCurrency := normalizeCurrency(req.Shipment.DestCurrency, dest.Currency)

	fxRate, fxWarning := c.resolveRate(ctx, req.Shipment.ForexDate, originCurrency, destCurrency)
	if fxWarning != nil {
		warnings = append(warnings, *fxWarning)
	}

	// First pass: total invoice value over the resolvable lines.
	var totalInvoiceOrigin float64
	valid := make([]validLine, 0, len(req.Products))
	for i, line := range req.Products {
		var record models.Product
		id, ok := line.ProductID.Int64()
		if ok {
			record, ok = records[id]
		}
		if !ok {
			log.Warn("Product not found, skipping line", "productId", line.ProductID, "line", i)
			warnings = append(warnings, models.Warning{
				Code:      models.WarnProductSkipped,
				Message:   fmt.Sprintf("line %d: product %q not found", i+1, string(line.ProductID)),
				ProductID: line.ProductID,
			})
			continue
		}
		totalInvoiceOrigin += line.Quantity * line.UnitPrice
		valid = append(valid, validLine{input: line, record: record})
	}

	if len(valid) == 0 {
		return nil, models.NewValidationError("no valid products processed")
	}

	freight := req.Charges.Freight
	insurance := req.Charges.Insurance

	// Second pass: per-line CIF, duty and landed cost.
	enriched := make([]models.EnrichedProductLine, 0, len(valid))
	var totals models.Totals
	for _, v := range valid {
		lineValueOrigin := v.input.Quantity * v.input.UnitPrice

		var invoiceWeight float64
		if totalInvoiceOrigin > 0 {
			invoiceWeight = lineValueOrigin / totalInvoiceOrigin
		}

		allocatedFreightOrigin := freight * invoiceWeight
		allocatedInsuranceOrigin := insurance * invoiceWeight
		customsValueOrigin := lineValueOrigin + allocatedFreightOrigin + allocatedInsuranceOrigin

		dutyRate := ParseDutyRate(v.record.RateFor(dutyType))
		dutyAmountOrigin := customsValueOrigin * (dutyRate / 100)
		totalLandCostOrigin := customsValueOrigin + dutyAmountOrigin

		line := models.EnrichedProductLine{
			ProductID:      v.input.ProductID,
			HTSCode:        v.record.HTSCode,
			ProductName:    v.record.Name,
			MainCategory:   v.record.MainCategory,
			SubCategory:    v.record.SubCategory,
			GroupName:      v.record.GroupName,
			UnitOfQuantity: v.record.UnitOfQuantity,

			Quantity:        v.input.Quantity,
			UnitPriceOrigin: v.input.UnitPrice,
			UnitPriceDest:   v.input.UnitPrice * fxRate,
			LineValueOrigin: lineValueOrigin,
			LineValueDest:   lineValueOrigin * fxRate,

			DutyType: dutyType,
			DutyRate: dutyRate,

			AllocatedFreightOrigin:   allocatedFreightOrigin,
			AllocatedFreightDest:     allocatedFreightOrigin * fxRate,
			AllocatedInsuranceOrigin: allocatedInsuranceOrigin,
			AllocatedInsuranceDest:   allocatedInsuranceOrigin * fxRate,

			CustomsValueOrigin:  customsValueOrigin,
			CustomsValueDest:    customsValueOrigin * fxRate,
			DutyAmountOrigin:    dutyAmountOrigin,
			DutyAmountDest:      dutyAmountOrigin * fxRate,
			TotalLandCostOrigin: totalLandCostOrigin,
			TotalLandCostDest:   totalLandCostOrigin * fxRate,

			InvoiceWeight: invoiceWeight * 100,
		}
		enriched = append(enriched, line)
		totals.Add(line)
	}

	charges := models.ChargesSummary{
		FreightOrigin:       freight,
		FreightDest:         freight * fxRate,
		InsuranceOrigin:     insurance,
		InsuranceDest:       insurance * fxRate,
		TotalShippingOrigin: freight + insurance,
		TotalShippingDest:   (freight + insurance) * fxRate,
	}
	if field, ok := firstNonFinite(charges, enriched, totals); !ok {
		return nil, models.NewInternalError(fmt.Errorf("calculation produced a non-finite %s", field), "")
	}

	log.Info("Landed cost calculated",
		"origin", origin.CountryName, "destination", dest.CountryName,
		"lines", len(enriched), "skipped", len(req.Products)-len(enriched),
		"fxRate", fxRate, "dutyType", dutyType)

	if warnings == nil {
		warnings = []models.Warning{}
	}
	return &models.CalculationResult{
		ShipmentSummary: models.ShipmentSummary{
			Type:           req.Shipment.Type,
			Origin:         origin.CountryName,
			OriginCompany:  req.Shipment.OriginCompany,
			Destination:    dest.CountryName,
			DestCompany:    req.Shipment.DestCompany,
			Mode:           req.Shipment.Mode,
			OriginCurrency: originCurrency,
			DestCurrency:   destCurrency,
			ForexRate:      fxRate,
			DutyType:       dutyType,
			ForexDate:      req.Shipment.ForexDate,
		},
		ChargesSummary: charges,
		Products:       enriched,
		Totals:         totals,
		Warnings:       warnings,
	}, nil
}

// lookupCountry returns (nil, nil) when the country does not exist.
func (c *LandedCostCalculator) lookupCountry(ctx context.Context, name string) (*models.Country, error) {
	country, err := c.countries.GetCountryByName(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up country %q: %w", name, err)
	}
	return country, nil
}

// resolveRate never fails: any provider problem degrades to 1.0 with a warning.
func (c *LandedCostCalculator) resolveRate(ctx context.Context, date, from, to string) (float64, *models.Warning) {
	if from == to {
		return 1.0, nil
	}

	fxCtx := ctx
	if c.forexTimeout > 0 {
		var cancel context.CancelFunc
		fxCtx, cancel = context.WithTimeout(ctx, c.forexTimeout)
		defer cancel()
	}

	rate, err := c.forex.GetRate(fxCtx, date, from, to)
	if err == nil && (!(rate > 0) || math.IsInf(rate, 0)) {
		err = fmt.Errorf("unusable rate %v", rate)
	}
	if err != nil {
		logger.WarnFromContext(ctx, "FX fallback to 1.0", "from", from, "to", to, "date", date, "error", err)
		return 1.0, &models.Warning{
			Code:    models.WarnForexFallback,
			Message: fmt.Sprintf("exchange rate %s to %s unavailable (%v); 1.0 used", from, to, err),
		}
	}
	return rate, nil
}

// normalizeCurrency upper-cases code and falls back to the country currency when empty.
func normalizeCurrency(code, countryCurrency string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = strings.ToUpper(strings.TrimSpace(countryCurrency))
	}
	return code
}

// firstNonFinite reports the first NaN or infinite figure of a result, which
// JSON cannot encode.
func firstNonFinite(charges models.ChargesSummary, lines []models.EnrichedProductLine, totals models.Totals) (string, bool) {
	finite := func(vals ...float64) bool {
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}

	if !finite(charges.FreightOrigin, charges.FreightDest, charges.InsuranceOrigin,
		charges.InsuranceDest, charges.TotalShippingOrigin, charges.TotalShippingDest) {
		return "charges summary", false
	}
	for i, l := range lines {
		if !finite(l.Quantity, l.UnitPriceOrigin, l.UnitPriceDest, l.LineValueOrigin, l.LineValueDest,
			l.DutyRate, l.AllocatedFreightOrigin, l.AllocatedFreightDest, l.AllocatedInsuranceOrigin,
			l.AllocatedInsuranceDest, l.CustomsValueOrigin, l.CustomsValueDest, l.DutyAmountOrigin,
			l.DutyAmountDest, l.TotalLandCostOrigin, l.TotalLandCostDest, l.InvoiceWeight) {
			return fmt.Sprintf("value on line %d", i+1), false
		}
	}
	if !finite(totals.InvoiceValueOrigin, totals.InvoiceValueDest, totals.CustomsValueOrigin,
		totals.CustomsValueDest, totals.DutyOrigin, totals.DutyDest, totals.TotalLandCostOrigin, totals.TotalLandCostDest) {
		return "total", false
	}
	return "", true
}
