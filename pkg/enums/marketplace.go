package enums

import "fmt"

// Marketplace represents the canonical marketplace enum in Postgres.
type Marketplace string

const (
	MarketplaceTrendyol    Marketplace = "trendyol"
	MarketplaceHepsiburada Marketplace = "hepsiburada"
	MarketplaceAmazonTR    Marketplace = "amazon_tr"
)

var validMarketplaces = []Marketplace{
	MarketplaceTrendyol,
	MarketplaceHepsiburada,
	MarketplaceAmazonTR,
}

// String implements fmt.Stringer.
func (m Marketplace) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Marketplace.
func (m Marketplace) IsValid() bool {
	for _, candidate := range validMarketplaces {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMarketplace converts raw input into a Marketplace.
func ParseMarketplace(value string) (Marketplace, error) {
	for _, candidate := range validMarketplaces {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid marketplace %q", value)
}
