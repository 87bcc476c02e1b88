// src/models/calculation.go
package models

import "time"

// ShipmentSummary echoes the resolved shipment context.
type ShipmentSummary struct {
	Type           string   `json:"type"`
	Origin         string   `json:"origin"`
	OriginCompany  string   `json:"originCompany"`
	Destination    string   `json:"destination"`
	DestCompany    string   `json:"destCompany"`
	Mode           string   `json:"mode"`
	OriginCurrency string   `json:"originCurrency"`
	DestCurrency   string   `json:"destCurrency"`
	ForexRate      float64  `json:"forexRate"`
	DutyType       DutyType `json:"dutyType"`
	ForexDate      string   `json:"forexDate"`
}

// ChargesSummary holds the shipment charges in both currencies.
type ChargesSummary struct {
	FreightOrigin       float64 `json:"freightOrigin"`
	FreightDest         float64 `json:"freightDest"`
	InsuranceOrigin     float64 `json:"insuranceOrigin"`
	InsuranceDest       float64 `json:"insuranceDest"`
	TotalShippingOrigin float64 `json:"totalShippingOrigin"`
	TotalShippingDest   float64 `json:"totalShippingDest"`
}

// EnrichedProductLine is one valid request line with its computed figures.
// Every *Dest field equals its *Origin counterpart times the forex rate.
type EnrichedProductLine struct {
	ProductID      ProductID `json:"productId"`
	HTSCode        string    `json:"htsCode"`
	ProductName    string    `json:"productName"`
	MainCategory   string    `json:"mainCategory"`
	SubCategory    string    `json:"subCategory"`
	GroupName      string    `json:"groupName"`
	UnitOfQuantity string    `json:"unitOfQuantity"`

	Quantity        float64 `json:"quantity"`
	UnitPriceOrigin float64 `json:"unitPriceOrigin"`
	UnitPriceDest   float64 `json:"unitPriceDest"`
	LineValueOrigin float64 `json:"lineValueOrigin"`
	LineValueDest   float64 `json:"lineValueDest"`

	DutyType DutyType `json:"dutyType"`
	DutyRate float64  `json:"dutyRate"` // percent, 18.5 means 18.5%

	AllocatedFreightOrigin   float64 `json:"allocatedFreightOrigin"`
	AllocatedFreightDest     float64 `json:"allocatedFreightDest"`
	AllocatedInsuranceOrigin float64 `json:"allocatedInsuranceOrigin"`
	AllocatedInsuranceDest   float64 `json:"allocatedInsuranceDest"`

	CustomsValueOrigin  float64 `json:"customsValueOrigin"`
	CustomsValueDest    float64 `json:"customsValueDest"`
	DutyAmountOrigin    float64 `json:"dutyAmountOrigin"`
	DutyAmountDest      float64 `json:"dutyAmountDest"`
	TotalLandCostOrigin float64 `json:"totalLandCostOrigin"`
	TotalLandCostDest   float64 `json:"totalLandCostDest"`

	InvoiceWeight float64 `json:"invoiceWeight"` // percent of total invoice value
}

// Totals sums the enriched lines.
type Totals struct {
	InvoiceValueOrigin  float64 `json:"invoiceValueOrigin"`
	InvoiceValueDest    float64 `json:"invoiceValueDest"`
	CustomsValueOrigin  float64 `json:"customsValueOrigin"`
	CustomsValueDest    float64 `json:"customsValueDest"`
	DutyOrigin          float64 `json:"dutyOrigin"`
	DutyDest            float64 `json:"dutyDest"`
	TotalLandCostOrigin float64 `json:"totalLandCostOrigin"`
	TotalLandCostDest   float64 `json:"totalLandCostDest"`
}

// Add accumulates one line into the totals.
func (t *Totals) Add(line EnrichedProductLine) {
	t.InvoiceValueOrigin += line.LineValueOrigin
	t.InvoiceValueDest += line.LineValueDest
	t.CustomsValueOrigin += line.CustomsValueOrigin
	t.CustomsValueDest += line.CustomsValueDest
	t.DutyOrigin += line.DutyAmountOrigin
	t.DutyDest += line.DutyAmountDest
	t.TotalLandCostOrigin += line.TotalLandCostOrigin
	t.TotalLandCostDest += line.TotalLandCostDest
}

// CalculationResult is the response of a landed-cost calculation.
type CalculationResult struct {
	ShipmentSummary ShipmentSummary       `json:"shipmentSummary"`
	ChargesSummary  ChargesSummary        `json:"chargesSummary"`
	Products        []EnrichedProductLine `json:"products"`
	Totals          Totals                `json:"totals"`
	Warnings        []Warning             `json:"warnings"`
}

// SavedCalculation is a persisted calculation with its headline totals.
type SavedCalculation struct {
	ID                int64                 `json:"id"`
	Reference         string                `json:"reference"`
	UserID            string                `json:"user_id"`
	Shipment          Shipment              `json:"shipment_data"`
	Products          []EnrichedProductLine `json:"products_data"`
	Charges           Charges               `json:"charges_data"`
	TotalLandedOrigin float64               `json:"total_landed_origin"`
	TotalLandedDest   float64               `json:"total_landed_dest"`
	ForexRate         float64               `json:"forex_rate"`
	DutyTotalOrigin   float64               `json:"duty_total_origin"`
	DutyTotalDest     float64               `json:"duty_total_dest"`
	CreatedAt         time.Time             `json:"created_at"`
}
