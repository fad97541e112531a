// Package budget computes the plate-cost breakdown, reimbursement
// headroom, and the food-cost-percentage benchmark check.
package budget

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

// SnapshotInput holds the inputs for one budget snapshot
type SnapshotInput struct {
	TotalCommoditySpend decimal.Decimal
	AnnualMeals         int64
	ReimbursementRate   decimal.Decimal
	LaborCostPerMeal    decimal.Decimal
	OverheadCostPerMeal decimal.Decimal
	Band                entities.BenchmarkBand
}

// Service implements the budget snapshot computation
type Service struct{}

// NewService creates a new budget service
func NewService() *Service {
	return &Service{}
}

// ComputeBudgetSnapshot derives the per-meal food cost, headroom, and
// benchmark status.
//
// Zero annual meals is a defined "not yet computable" state, not a
// fault: the snapshot comes back with FoodCostDefined false and
// BenchmarkUnknown so the caller can distinguish it from a real zero.
// Negative headroom is reportable, never an error.
func (s *Service) ComputeBudgetSnapshot(input SnapshotInput) (entities.BudgetSnapshot, error) {
	if input.TotalCommoditySpend.IsNegative() {
		return entities.BudgetSnapshot{}, fmt.Errorf("total commodity spend cannot be negative, got %s", input.TotalCommoditySpend)
	}
	if input.AnnualMeals < 0 {
		return entities.BudgetSnapshot{}, fmt.Errorf("annual meals cannot be negative, got %d", input.AnnualMeals)
	}
	if input.ReimbursementRate.IsNegative() {
		return entities.BudgetSnapshot{}, fmt.Errorf("reimbursement rate cannot be negative, got %s", input.ReimbursementRate)
	}
	if input.LaborCostPerMeal.IsNegative() {
		return entities.BudgetSnapshot{}, fmt.Errorf("labor cost per meal cannot be negative, got %s", input.LaborCostPerMeal)
	}
	if input.OverheadCostPerMeal.IsNegative() {
		return entities.BudgetSnapshot{}, fmt.Errorf("overhead cost per meal cannot be negative, got %s", input.OverheadCostPerMeal)
	}

	snapshot := entities.BudgetSnapshot{
		ReimbursementRate:   input.ReimbursementRate,
		LaborCostPerMeal:    input.LaborCostPerMeal,
		OverheadCostPerMeal: input.OverheadCostPerMeal,
		BenchmarkStatus:     entities.BenchmarkUnknown,
	}

	if input.AnnualMeals == 0 {
		return snapshot, nil
	}

	meals := decimal.NewFromInt(input.AnnualMeals)
	snapshot.FoodCostPerMeal = input.TotalCommoditySpend.Div(meals)
	snapshot.FoodCostDefined = true

	plateCost := snapshot.FoodCostPerMeal.
		Add(input.LaborCostPerMeal).
		Add(input.OverheadCostPerMeal)
	snapshot.Headroom = input.ReimbursementRate.Sub(plateCost)
	snapshot.AnnualUpgradeFund = snapshot.Headroom.Mul(meals)

	// Guard: a zero reimbursement rate leaves the percentage undefined
	if input.ReimbursementRate.IsPositive() {
		snapshot.FoodCostPct = snapshot.FoodCostPerMeal.
			Div(input.ReimbursementRate).
			Mul(decimal.NewFromInt(100))
		snapshot.BenchmarkStatus = input.Band.Classify(snapshot.FoodCostPct)
	}

	return snapshot, nil
}

// WeightedReimbursementRate computes the district's average per-meal
// reimbursement: the base rate per eligibility tier plus any certified
// add-ons, weighted by the free/reduced/paid meal mix.
func WeightedReimbursementRate(
	rates entities.ReimbursementRates,
	demographics entities.Demographics,
	certifications entities.Certifications,
) decimal.Decimal {
	addon := decimal.Zero
	if certifications.PerformanceBased {
		addon = addon.Add(rates.PerformanceBasedAddon)
	}
	if certifications.SevereNeed {
		addon = addon.Add(rates.SevereNeedAddon)
	}

	free := rates.FreeLunchBase.Add(addon).Mul(demographics.FreePct)
	reduced := rates.ReducedLunchBase.Add(addon).Mul(demographics.ReducedPct)
	paid := rates.PaidLunchBase.Add(addon).Mul(demographics.PaidPct)

	return free.Add(reduced).Add(paid)
}
