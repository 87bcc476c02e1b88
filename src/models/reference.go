package models

import "time"

// Country is a row of the countries reference table.
type Country struct {
	ID                  int64     `json:"id"`
	CountryName         string    `json:"country_name"`
	ISOCode             string    `json:"iso_code"`
	Currency            string    `json:"currency"`
	Region              string    `json:"region"`
	Status              string    `json:"status"` // General, Special or Column2
	EligibilityCriteria string    `json:"eligibility_criteria"`
	TariffDataStatus    string    `json:"tariff_data_status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DutyType resolves the country status into a DutyType.
func (c *Country) DutyType() (DutyType, bool) {
	return ParseDutyType(c.Status)
}

// Product is an HTS line of product_table. Duty rates are kept as the text
// published in the tariff schedule ("5%", "Free", "2.5¢/kg").
type Product struct {
	ID                int64      `json:"id"`
	Section           string     `json:"section"`
	Chapter           int        `json:"chapter"`
	MainCategory      string     `json:"main_category"`
	SubCategory       string     `json:"subcategory"`
	GroupName         string     `json:"group_name"`
	HTSCode           string     `json:"hts_code"`
	Name              string     `json:"product"`
	UnitOfQuantity    string     `json:"unit_of_quantity"`
	GeneralRateOfDuty string     `json:"general_rate_of_duty"`
	SpecialRateOfDuty string     `json:"special_rate_of_duty"`
	Column2RateOfDuty string     `json:"column2_rate_of_duty"`
	LastUpdated       *time.Time `json:"last_updated,omitempty"`
}

// RateFor returns the raw rate text for the given duty column.
func (p *Product) RateFor(dt DutyType) string {
	switch dt {
	case DutyTypeSpecial:
		return p.SpecialRateOfDuty
	case DutyTypeColumn2:
		return p.Column2RateOfDuty
	default:
		return p.GeneralRateOfDuty
	}
}
