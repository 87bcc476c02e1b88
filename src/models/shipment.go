// src/models/shipment.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ProductID references a product_table row. Clients send it either as a JSON
// number or as a string, so both are accepted and kept in their textual form.
type ProductID string

func (p *ProductID) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = ""
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case json.Number:
		*p = ProductID(t.String())
	case string:
		*p = ProductID(strings.TrimSpace(t))
	default:
		return fmt.Errorf("productId must be a number or a string, got %s", string(trimmed))
	}
	return nil
}

// MarshalJSON echoes numeric ids as numbers and anything else as a string.
func (p ProductID) MarshalJSON() ([]byte, error) {
	if id, ok := p.Int64(); ok {
		return []byte(strconv.FormatInt(id, 10)), nil
	}
	return json.Marshal(string(p))
}

// Int64 returns the numeric row id, if the reference is one. Integral float
// forms such as 1.0 or 1e2 count as ids.
func (p ProductID) Int64() (int64, bool) {
	s := strings.TrimSpace(string(p))
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Shipment is the shipment context of a calculation request.
type Shipment struct {
	OriginCountry      string `json:"originCountry"`
	DestinationCountry string `json:"destinationCountry"`
	OriginCurrency     string `json:"originCurrency" validate:"omitempty,currencycode"`
	DestCurrency       string `json:"destCurrency" validate:"omitempty,currencycode"`
	ForexDate          string `json:"forexDate" validate:"omitempty,forexdate"`
	Type               string `json:"type" validate:"max=50"`
	Mode               string `json:"mode" validate:"max=50"`
	OriginCompany      string `json:"originCompany,omitempty" validate:"max=255"`
	DestCompany        string `json:"destCompany,omitempty" validate:"max=255"`
}

// Charges are shipment-level costs in origin currency.
type Charges struct {
	Freight   float64 `json:"freight" validate:"gte=0"`
	Insurance float64 `json:"insurance" validate:"gte=0"`
}

// ProductLine is one invoice line of the request.
type ProductLine struct {
	ProductID ProductID `json:"productId"`
	Quantity  float64   `json:"quantity" validate:"gt=0"`
	UnitPrice float64   `json:"unitPrice" validate:"gte=0"`
}

// CalculationRequest is the body of POST /calculator/run.
type CalculationRequest struct {
	Shipment Shipment      `json:"shipment"`
	Charges  Charges       `json:"charges"`
	Products []ProductLine `json:"products" validate:"dive"`
}
