package models

import "strings"

// DutyType selects which tariff-rate column applies to a shipment. It is
// derived from the origin country's trade status.
type DutyType string

const (
	DutyTypeGeneral DutyType = "general"
	DutyTypeSpecial DutyType = "special"
	DutyTypeColumn2 DutyType = "column2"
)

// ParseDutyType maps a free-text country status to a DutyType. Matching is
// case-insensitive. Empty or unrecognised statuses return DutyTypeGeneral
// with known=false.
func ParseDutyType(status string) (dt DutyType, known bool) {
	switch DutyType(strings.ToLower(strings.TrimSpace(status))) {
	case DutyTypeGeneral:
		return DutyTypeGeneral, true
	case DutyTypeSpecial:
		return DutyTypeSpecial, true
	case DutyTypeColumn2:
		return DutyTypeColumn2, true
	default:
		return DutyTypeGeneral, false
	}
}

func (d DutyType) String() string { return string(d) }
