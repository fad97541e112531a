package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CommodityID represents a unique WBSCM commodity identifier
type CommodityID string

// Category represents the food category of a commodity
type Category int

const (
	Beef Category = iota
	Poultry
	Pork
	Fish
	Vegetables
	Fruits
	Grains
	Dairy
	Legumes
)

// String method for Category enum
func (c Category) String() string {
	switch c {
	case Beef:
		return "beef"
	case Poultry:
		return "poultry"
	case Pork:
		return "pork"
	case Fish:
		return "fish"
	case Vegetables:
		return "vegetables"
	case Fruits:
		return "fruits"
	case Grains:
		return "grains"
	case Dairy:
		return "dairy"
	case Legumes:
		return "legumes"
	default:
		return "unknown"
	}
}

// AllCategories returns every category in stable display order
func AllCategories() []Category {
	return []Category{Beef, Poultry, Pork, Fish, Vegetables, Fruits, Grains, Dairy, Legumes}
}

// ParseCategory parses a category name into a Category
func ParseCategory(s string) (Category, error) {
	switch s {
	case "beef":
		return Beef, nil
	case "poultry":
		return Poultry, nil
	case "pork":
		return Pork, nil
	case "fish":
		return Fish, nil
	case "vegetables":
		return Vegetables, nil
	case "fruits":
		return Fruits, nil
	case "grains":
		return Grains, nil
	case "dairy":
		return Dairy, nil
	case "legumes":
		return Legumes, nil
	default:
		return Beef, fmt.Errorf("invalid category: %s (expected: beef, poultry, pork, fish, vegetables, fruits, grains, dairy, or legumes)", s)
	}
}

// OuncesPerPound is the conversion factor from purchased pounds to servable ounces
const OuncesPerPound = 16

// CommodityItem represents a purchasable USDA commodity unit.
// Reference data: loaded once at startup and never mutated.
type CommodityItem struct {
	ID            CommodityID
	Description   string
	Category      Category
	CaseWeightLbs decimal.Decimal
	CostPerLb     decimal.Decimal
	// ServingsPerCase is either supplied directly from the product
	// information sheet or derived from the yield factor and serving size.
	ServingsPerCase int64
	// Recommended marks whole/scratch-oriented products over processed ones
	Recommended bool
	// Optional nutrition facts, zero when the info sheet omits them
	CaloriesPerServing decimal.Decimal
	ProteinPerServing  decimal.Decimal
}

// NewCommodityItem creates a validated CommodityItem with a directly
// supplied servings-per-case count.
func NewCommodityItem(
	id CommodityID,
	description string,
	category Category,
	caseWeightLbs, costPerLb decimal.Decimal,
	servingsPerCase int64,
	recommended bool,
) (*CommodityItem, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("commodity id cannot be empty")
	}
	if description == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if !caseWeightLbs.IsPositive() {
		return nil, fmt.Errorf("case weight must be positive, got %s", caseWeightLbs)
	}
	if costPerLb.IsNegative() {
		return nil, fmt.Errorf("cost per pound cannot be negative, got %s", costPerLb)
	}
	if servingsPerCase <= 0 {
		return nil, fmt.Errorf("servings per case must be positive, got %d", servingsPerCase)
	}

	return &CommodityItem{
		ID:              id,
		Description:     description,
		Category:        category,
		CaseWeightLbs:   caseWeightLbs,
		CostPerLb:       costPerLb,
		ServingsPerCase: servingsPerCase,
		Recommended:     recommended,
	}, nil
}

// NewCommodityItemFromYield creates a validated CommodityItem whose
// servings-per-case is derived from the Food Buying Guide yield factor
// and the planned serving size.
func NewCommodityItemFromYield(
	id CommodityID,
	description string,
	category Category,
	caseWeightLbs, costPerLb decimal.Decimal,
	yieldFactor, servingSizeOz decimal.Decimal,
	recommended bool,
) (*CommodityItem, error) {
	servings, err := DeriveServingsPerCase(caseWeightLbs, yieldFactor, servingSizeOz)
	if err != nil {
		return nil, err
	}
	return NewCommodityItem(id, description, category, caseWeightLbs, costPerLb, servings, recommended)
}

// DeriveServingsPerCase computes servings per case from the case weight,
// the yield factor (fraction of raw weight servable after preparation
// loss), and the serving size in ounces:
//
//	round(caseWeightLbs * 16 oz/lb * yieldFactor / servingSizeOz)
func DeriveServingsPerCase(caseWeightLbs, yieldFactor, servingSizeOz decimal.Decimal) (int64, error) {
	if !caseWeightLbs.IsPositive() {
		return 0, fmt.Errorf("case weight must be positive, got %s", caseWeightLbs)
	}
	if !yieldFactor.IsPositive() {
		return 0, fmt.Errorf("yield factor must be positive, got %s", yieldFactor)
	}
	if !servingSizeOz.IsPositive() {
		return 0, fmt.Errorf("serving size must be positive, got %s", servingSizeOz)
	}

	servings := caseWeightLbs.
		Mul(decimal.NewFromInt(OuncesPerPound)).
		Mul(yieldFactor).
		Div(servingSizeOz).
		Round(0)

	if !servings.IsPositive() {
		return 0, fmt.Errorf("derived servings per case must be positive, got %s", servings)
	}

	return servings.IntPart(), nil
}
