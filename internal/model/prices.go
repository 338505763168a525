package model

import "github.com/shopspring/decimal"

// MetalPrices is the singleton pricing record. Updates overwrite the whole
// record.
type MetalPrices struct {
	GoldPricePerGram            decimal.Decimal `json:"goldPricePerGram"`
	NaturalDiamondPricePerCarat decimal.Decimal `json:"naturalDiamondPricePerCarat"`
	LabDiamondPricePerCarat     decimal.Decimal `json:"labDiamondPricePerCarat"`
}

// ValidateMetalPrices requires all three prices to be present. Presence is
// the only check; the backend owns any further rules.
func ValidateMetalPrices(p MetalPrices) FieldErrors {
	var errs FieldErrors
	if p.GoldPricePerGram.IsZero() {
		errs = append(errs, FieldError{"goldPricePerGram", "Please fill all the fields"})
	}
	if p.NaturalDiamondPricePerCarat.IsZero() {
		errs = append(errs, FieldError{"naturalDiamondPricePerCarat", "Please fill all the fields"})
	}
	if p.LabDiamondPricePerCarat.IsZero() {
		errs = append(errs, FieldError{"labDiamondPricePerCarat", "Please fill all the fields"})
	}
	return errs
}
