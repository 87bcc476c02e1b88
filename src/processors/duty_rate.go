package processors

import (
	"math"
	"regexp"
	"strconv"
)

var leadingNumber = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseDutyRate reads the leading decimal number of a tariff rate string as a
// percentage: "5%" is 5, "2.5¢/kg" is 2.5, "Free" and "" are 0.
func ParseDutyRate(raw string) float64 {
	m := leadingNumber.FindString(raw)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
