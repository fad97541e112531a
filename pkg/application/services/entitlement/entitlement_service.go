// Package entitlement tracks commodity spend against the district's
// annual entitlement and its fixed sub-allocations.
package entitlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

// underUtilizedThresholdPct is the mid-season structural warning level
var underUtilizedThresholdPct = decimal.NewFromInt(50)

// LedgerParams holds the district-level inputs for the ledger computation
type LedgerParams struct {
	EntitlementTotal decimal.Decimal
	// ReservedFraction is the entitlement share held for the DoD Fresh
	// program, expressed as a fraction in [0, 1]
	ReservedFraction decimal.Decimal
	// UtilizationTarget is the season-end utilization goal as a
	// percentage (e.g. 98). Zero disables the belowTarget flag.
	UtilizationTarget decimal.Decimal
	// AnnualMeals and NonCommodityFoodCostPerMeal drive the commodity
	// share audit; AnnualMeals zero leaves the audit undefined
	AnnualMeals                 int64
	NonCommodityFoodCostPerMeal decimal.Decimal
}

// Service implements the entitlement ledger computation
type Service struct{}

// NewService creates a new entitlement service
func NewService() *Service {
	return &Service{}
}

// ComputeLedger sums category allocation costs against the entitlement.
// Over-allocation and under-utilization are reportable states carried on
// the ledger, never errors: remaining is allowed to go negative.
func (s *Service) ComputeLedger(
	allocations []entities.CategoryAllocation,
	params LedgerParams,
) (entities.EntitlementLedger, error) {
	if params.EntitlementTotal.IsNegative() {
		return entities.EntitlementLedger{}, fmt.Errorf("entitlement total cannot be negative, got %s", params.EntitlementTotal)
	}
	one := decimal.NewFromInt(1)
	if params.ReservedFraction.IsNegative() || params.ReservedFraction.GreaterThan(one) {
		return entities.EntitlementLedger{}, fmt.Errorf("reserved fraction must be between 0 and 1, got %s", params.ReservedFraction)
	}
	if params.AnnualMeals < 0 {
		return entities.EntitlementLedger{}, fmt.Errorf("annual meals cannot be negative, got %d", params.AnnualMeals)
	}

	spent := decimal.Zero
	for _, alloc := range allocations {
		spent = spent.Add(alloc.TotalCost)
	}

	reserved := params.EntitlementTotal.Mul(params.ReservedFraction)

	ledger := entities.EntitlementLedger{
		EntitlementTotal:   params.EntitlementTotal,
		ReservedFraction:   params.ReservedFraction,
		ReservedAllocation: reserved,
		GeneralAllocation:  params.EntitlementTotal.Sub(reserved),
		Spent:              spent,
		Remaining:          params.EntitlementTotal.Sub(spent),
		UtilizationTarget:  params.UtilizationTarget,
	}

	// Guard: zero entitlement reports zero utilization, not a fault
	if params.EntitlementTotal.IsPositive() {
		ledger.UtilizationPct = spent.Div(params.EntitlementTotal).Mul(decimal.NewFromInt(100))
	}

	ledger.UnderUtilized = spent.IsPositive() && ledger.UtilizationPct.LessThan(underUtilizedThresholdPct)
	ledger.OverAllocated = ledger.Remaining.IsNegative()
	ledger.BelowTarget = params.UtilizationTarget.IsPositive() &&
		ledger.UtilizationPct.LessThan(params.UtilizationTarget)

	// Commodity share audit against total food cost
	if params.AnnualMeals > 0 {
		meals := decimal.NewFromInt(params.AnnualMeals)
		ledger.CommodityCostPerMeal = spent.Div(meals)
		totalFood := ledger.CommodityCostPerMeal.Add(params.NonCommodityFoodCostPerMeal)
		if totalFood.IsPositive() {
			ledger.CommodityShareOfFood = ledger.CommodityCostPerMeal.
				Div(totalFood).
				Mul(decimal.NewFromInt(100))
			ledger.CommodityShareDefined = true
		}
	}

	return ledger, nil
}
