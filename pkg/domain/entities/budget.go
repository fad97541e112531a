package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BenchmarkStatus represents where the food-cost percentage falls
// relative to the configured benchmark band
type BenchmarkStatus int

const (
	BenchmarkBelow BenchmarkStatus = iota
	BenchmarkWithin
	BenchmarkAbove
	// BenchmarkUnknown is reported when the percentage is not computable
	// (zero meals or zero reimbursement rate)
	BenchmarkUnknown
)

// String method for BenchmarkStatus enum
func (b BenchmarkStatus) String() string {
	switch b {
	case BenchmarkBelow:
		return "below"
	case BenchmarkWithin:
		return "within"
	case BenchmarkAbove:
		return "above"
	case BenchmarkUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// BenchmarkBand is the acceptable food-cost-percentage range used as a
// financial health check. Programs below may be over-investing in labor;
// programs above may have unsustainable food costs.
type BenchmarkBand struct {
	MinPct decimal.Decimal
	MaxPct decimal.Decimal
}

// NewBenchmarkBand creates a validated BenchmarkBand
func NewBenchmarkBand(minPct, maxPct decimal.Decimal) (BenchmarkBand, error) {
	if minPct.IsNegative() {
		return BenchmarkBand{}, fmt.Errorf("benchmark minimum cannot be negative, got %s", minPct)
	}
	if maxPct.LessThan(minPct) {
		return BenchmarkBand{}, fmt.Errorf("benchmark maximum (%s) cannot be less than minimum (%s)", maxPct, minPct)
	}
	return BenchmarkBand{MinPct: minPct, MaxPct: maxPct}, nil
}

// DefaultBenchmarkBand returns the 40-50% industry benchmark
func DefaultBenchmarkBand() BenchmarkBand {
	return BenchmarkBand{
		MinPct: decimal.NewFromInt(40),
		MaxPct: decimal.NewFromInt(50),
	}
}

// Classify returns where a food-cost percentage falls within the band
func (b BenchmarkBand) Classify(foodCostPct decimal.Decimal) BenchmarkStatus {
	switch {
	case foodCostPct.LessThan(b.MinPct):
		return BenchmarkBelow
	case foodCostPct.GreaterThan(b.MaxPct):
		return BenchmarkAbove
	default:
		return BenchmarkWithin
	}
}

// BudgetSnapshot is the plate-cost breakdown for one plan. When
// FoodCostDefined is false (zero annual meals), the per-meal food cost,
// headroom, and percentage fields are not computable and the benchmark
// status is BenchmarkUnknown.
type BudgetSnapshot struct {
	ReimbursementRate   decimal.Decimal
	FoodCostPerMeal     decimal.Decimal
	FoodCostDefined     bool
	LaborCostPerMeal    decimal.Decimal
	OverheadCostPerMeal decimal.Decimal
	// Headroom = reimbursement - (food + labor + overhead); negative
	// headroom signals an unsustainable plan, reportable not fatal
	Headroom        decimal.Decimal
	FoodCostPct     decimal.Decimal
	BenchmarkStatus BenchmarkStatus
	// AnnualUpgradeFund = headroom x annual meals, the yearly dollars
	// available for values-aligned ingredient upgrades
	AnnualUpgradeFund decimal.Decimal
}

// ReimbursementRates holds the federal per-meal base rates and the
// certification add-ons a district may qualify for
type ReimbursementRates struct {
	FreeLunchBase         decimal.Decimal
	ReducedLunchBase      decimal.Decimal
	PaidLunchBase         decimal.Decimal
	PerformanceBasedAddon decimal.Decimal
	SevereNeedAddon       decimal.Decimal
}

// Demographics holds the district's meal-eligibility mix as fractions
// that must sum to one
type Demographics struct {
	FreePct    decimal.Decimal
	ReducedPct decimal.Decimal
	PaidPct    decimal.Decimal
}

// NewDemographics creates validated Demographics
func NewDemographics(freePct, reducedPct, paidPct decimal.Decimal) (Demographics, error) {
	for name, pct := range map[string]decimal.Decimal{
		"free": freePct, "reduced": reducedPct, "paid": paidPct,
	} {
		if pct.IsNegative() {
			return Demographics{}, fmt.Errorf("%s fraction cannot be negative, got %s", name, pct)
		}
	}

	sum := freePct.Add(reducedPct).Add(paidPct)
	tolerance := decimal.New(1, -6)
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(tolerance) {
		return Demographics{}, fmt.Errorf("demographic fractions must sum to 1, got %s", sum)
	}

	return Demographics{FreePct: freePct, ReducedPct: reducedPct, PaidPct: paidPct}, nil
}

// Certifications marks which reimbursement add-ons the district holds
type Certifications struct {
	PerformanceBased bool
	SevereNeed       bool
}
