// Package config loads the district profile: the financial and
// demographic settings that parameterize the planning engine.
package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

// DistrictProfile holds district-level planning configuration. Loaded
// once at startup; validation failures block startup rather than fall
// back to defaults, since wrong financial inputs corrupt every number
// downstream.
type DistrictProfile struct {
	SchoolYear        string
	EntitlementTotal  decimal.Decimal
	ReservedFraction  decimal.Decimal
	UtilizationTarget decimal.Decimal

	AnnualMeals                 int64
	NonCommodityFoodCostPerMeal decimal.Decimal
	LaborCostPerMeal            decimal.Decimal
	OverheadCostPerMeal         decimal.Decimal

	BenchmarkBand  entities.BenchmarkBand
	Rates          entities.ReimbursementRates
	Demographics   entities.Demographics
	Certifications entities.Certifications
}

// LoadDistrictProfile reads and validates a district profile file
// (YAML). Missing required fields or invariant violations fail the load.
func LoadDistrictProfile(path string) (*DistrictProfile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Benchmark band defaults to the 40-50% industry range; everything
	// financial must be stated explicitly.
	v.SetDefault("benchmark_band.min_pct", 40)
	v.SetDefault("benchmark_band.max_pct", 50)

	if err := v.ReadInConfig(); err != nil {
		return nil, &entities.CatalogLoadError{Source: path, Err: err}
	}

	for _, key := range []string{
		"entitlement_total",
		"reserved_fraction",
		"annual_meals",
		"reimbursement_rates.free_lunch_base",
		"reimbursement_rates.reduced_lunch_base",
		"reimbursement_rates.paid_lunch_base",
	} {
		if !v.IsSet(key) {
			return nil, &entities.CatalogLoadError{
				Source: path,
				Err:    fmt.Errorf("missing required field: %s", key),
			}
		}
	}

	dec := func(key string) decimal.Decimal {
		return decimal.NewFromFloat(v.GetFloat64(key))
	}

	band, err := entities.NewBenchmarkBand(dec("benchmark_band.min_pct"), dec("benchmark_band.max_pct"))
	if err != nil {
		return nil, &entities.CatalogLoadError{Source: path, Err: err}
	}

	demographics, err := entities.NewDemographics(
		dec("demographics.free_pct"),
		dec("demographics.reduced_pct"),
		dec("demographics.paid_pct"),
	)
	if err != nil {
		return nil, &entities.CatalogLoadError{Source: path, Err: err}
	}

	profile := &DistrictProfile{
		SchoolYear:        v.GetString("school_year"),
		EntitlementTotal:  dec("entitlement_total"),
		ReservedFraction:  dec("reserved_fraction"),
		UtilizationTarget: dec("utilization_target"),

		AnnualMeals:                 v.GetInt64("annual_meals"),
		NonCommodityFoodCostPerMeal: dec("non_commodity_food_cost_per_meal"),
		LaborCostPerMeal:            dec("labor_cost_per_meal"),
		OverheadCostPerMeal:         dec("overhead_cost_per_meal"),

		BenchmarkBand: band,
		Rates: entities.ReimbursementRates{
			FreeLunchBase:         dec("reimbursement_rates.free_lunch_base"),
			ReducedLunchBase:      dec("reimbursement_rates.reduced_lunch_base"),
			PaidLunchBase:         dec("reimbursement_rates.paid_lunch_base"),
			PerformanceBasedAddon: dec("reimbursement_rates.performance_based_addon"),
			SevereNeedAddon:       dec("reimbursement_rates.severe_need_addon"),
		},
		Demographics: demographics,
		Certifications: entities.Certifications{
			PerformanceBased: v.GetBool("certifications.performance_based_reimbursement"),
			SevereNeed:       v.GetBool("certifications.severe_need_eligible"),
		},
	}

	if err := profile.validate(); err != nil {
		return nil, &entities.CatalogLoadError{Source: path, Err: err}
	}

	return profile, nil
}

func (p *DistrictProfile) validate() error {
	if p.EntitlementTotal.IsNegative() {
		return fmt.Errorf("entitlement_total cannot be negative, got %s", p.EntitlementTotal)
	}
	one := decimal.NewFromInt(1)
	if p.ReservedFraction.IsNegative() || p.ReservedFraction.GreaterThan(one) {
		return fmt.Errorf("reserved_fraction must be between 0 and 1, got %s", p.ReservedFraction)
	}
	if p.AnnualMeals < 0 {
		return fmt.Errorf("annual_meals cannot be negative, got %d", p.AnnualMeals)
	}
	for name, amount := range map[string]decimal.Decimal{
		"non_commodity_food_cost_per_meal":       p.NonCommodityFoodCostPerMeal,
		"labor_cost_per_meal":                    p.LaborCostPerMeal,
		"overhead_cost_per_meal":                 p.OverheadCostPerMeal,
		"reimbursement_rates.free_lunch_base":    p.Rates.FreeLunchBase,
		"reimbursement_rates.reduced_lunch_base": p.Rates.ReducedLunchBase,
		"reimbursement_rates.paid_lunch_base":    p.Rates.PaidLunchBase,
	} {
		if amount.IsNegative() {
			return fmt.Errorf("%s cannot be negative, got %s", name, amount)
		}
	}
	return nil
}
