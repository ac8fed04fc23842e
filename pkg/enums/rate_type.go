package enums

import "fmt"

// RateType distinguishes how a shipping tier brackets its lookup value.
type RateType string

const (
	// RateTypeDesi brackets by the volumetric weight ("desi") of the shipment.
	RateTypeDesi RateType = "desi"
	// RateTypePrice brackets by the sale price of the shipped item.
	RateTypePrice RateType = "price"
)

var validRateTypes = []RateType{
	RateTypeDesi,
	RateTypePrice,
}

// String implements fmt.Stringer.
func (r RateType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RateType.
func (r RateType) IsValid() bool {
	for _, candidate := range validRateTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRateType converts raw input into a RateType.
func ParseRateType(value string) (RateType, error) {
	for _, candidate := range validRateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rate type %q", value)
}
