package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend sends and expects plain JSON numbers for money fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductSize is one selectable size of a product with its metal weight.
type ProductSize struct {
	DisplayName   string          `json:"displayName"`
	WeightOfMetal decimal.Decimal `json:"weightOfMetal"`
}

// Category is a product category with its default size template.
type Category struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

// Product is a catalog entry as stored by the backend.
type Product struct {
	ID                   string          `json:"_id,omitempty"`
	SKUID                string          `json:"skuId"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Category             string          `json:"category"`
	Images               []string        `json:"images"`
	Sizes                []ProductSize   `json:"sizes"`
	KaratOfGold          int             `json:"karatOfGold"`
	WeightOfGold         decimal.Decimal `json:"weightOfGold"`
	CostOfNaturalDiamond decimal.Decimal `json:"costOfNaturalDiamond"`
	CostOfLabDiamond     decimal.Decimal `json:"costOfLabDiamond"`
	CostOfLabour         decimal.Decimal `json:"costOfLabour"`
	MiscellaneousCost    decimal.Decimal `json:"miscellaneousCost"`
	IsCentralisedDiamond bool            `json:"isCentralisedDiamond"`
	IsNaturalDiamond     bool            `json:"isNaturalDiamond"`
	IsLabDiamond         bool            `json:"isLabDiamond"`
	IsActive             bool            `json:"isActive"`
	IsLandingPageProduct bool            `json:"isLandingPageProduct"`
	IsChatWithUs         bool            `json:"isChatWithUs"`
	CalculatedPrice      decimal.Decimal `json:"calculatedPrice,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// RequiresKarat reports whether order line items for this product need a
// karat-of-gold selection.
func (p Product) RequiresKarat() bool {
	return p.WeightOfGold.IsPositive()
}

// DiamondTypes returns the diamond type choices this product offers.
func (p Product) DiamondTypes() []string {
	var types []string
	if p.IsNaturalDiamond {
		types = append(types, DiamondNatural)
	}
	if p.IsLabDiamond {
		types = append(types, DiamondLab)
	}
	return types
}

// ValidateProduct checks a product form before create/update. At least one
// image must have been uploaded first.
func ValidateProduct(p Product) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, FieldError{"name", "Please enter a product name"})
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, FieldError{"category", "Please select a category"})
	}

	images := p.Images[:0:0]
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		errs = append(errs, FieldError{"images", "Please upload at least one image"})
	}

	for _, s := range p.Sizes {
		if strings.TrimSpace(s.DisplayName) == "" {
			errs = append(errs, FieldError{"sizes", "Every size needs a display name"})
			break
		}
	}
	return errs
}
