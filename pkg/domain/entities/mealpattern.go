package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GradeGroup represents a USDA meal-pattern age/grade group
type GradeGroup int

const (
	PreK GradeGroup = iota
	Elementary
	Middle
	High
)

// String method for GradeGroup enum
func (g GradeGroup) String() string {
	switch g {
	case PreK:
		return "pre_k"
	case Elementary:
		return "elementary"
	case Middle:
		return "middle"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// ParseGradeGroup parses a grade group name into a GradeGroup
func ParseGradeGroup(s string) (GradeGroup, error) {
	switch s {
	case "pre_k", "prek":
		return PreK, nil
	case "elementary":
		return Elementary, nil
	case "middle":
		return Middle, nil
	case "high":
		return High, nil
	default:
		return PreK, fmt.Errorf("invalid grade group: %s (expected: pre_k, elementary, middle, or high)", s)
	}
}

// VegSubgroup represents a USDA vegetable subgroup
type VegSubgroup int

const (
	DarkGreen VegSubgroup = iota
	RedOrange
	LegumesVeg
	Starchy
	OtherVeg
)

// String method for VegSubgroup enum
func (v VegSubgroup) String() string {
	switch v {
	case DarkGreen:
		return "dark_green"
	case RedOrange:
		return "red_orange"
	case LegumesVeg:
		return "legumes"
	case Starchy:
		return "starchy"
	case OtherVeg:
		return "other"
	default:
		return "unknown"
	}
}

// AllVegSubgroups returns every vegetable subgroup in stable report order
func AllVegSubgroups() []VegSubgroup {
	return []VegSubgroup{DarkGreen, RedOrange, LegumesVeg, Starchy, OtherVeg}
}

// ParseVegSubgroup parses a vegetable subgroup name into a VegSubgroup
func ParseVegSubgroup(s string) (VegSubgroup, error) {
	switch s {
	case "dark_green":
		return DarkGreen, nil
	case "red_orange":
		return RedOrange, nil
	case "legumes", "beans_peas":
		return LegumesVeg, nil
	case "starchy":
		return Starchy, nil
	case "other":
		return OtherVeg, nil
	default:
		return DarkGreen, fmt.Errorf("invalid vegetable subgroup: %s (expected: dark_green, red_orange, legumes, starchy, or other)", s)
	}
}

// MealPatternRequirement holds the USDA weekly minimums for one grade group.
// Static reference data loaded from the catalog.
type MealPatternRequirement struct {
	GradeGroup      GradeGroup
	MeatMAOz        decimal.Decimal
	GrainOzEq       decimal.Decimal
	FruitCups       decimal.Decimal
	VegCupsTotal    decimal.Decimal
	VegSubgroupCups map[VegSubgroup]decimal.Decimal
}

// NewMealPatternRequirement creates a validated MealPatternRequirement.
// Every vegetable subgroup must be present; amounts cannot be negative.
func NewMealPatternRequirement(
	gradeGroup GradeGroup,
	meatMAOz, grainOzEq, fruitCups, vegCupsTotal decimal.Decimal,
	vegSubgroupCups map[VegSubgroup]decimal.Decimal,
) (*MealPatternRequirement, error) {
	for name, amount := range map[string]decimal.Decimal{
		"meat/meat-alternate oz-eq": meatMAOz,
		"grain oz-eq":               grainOzEq,
		"fruit cups":                fruitCups,
		"vegetable cups":            vegCupsTotal,
	} {
		if amount.IsNegative() {
			return nil, fmt.Errorf("%s requirement cannot be negative, got %s", name, amount)
		}
	}

	for _, subgroup := range AllVegSubgroups() {
		amount, ok := vegSubgroupCups[subgroup]
		if !ok {
			return nil, fmt.Errorf("missing vegetable subgroup requirement: %s", subgroup)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("vegetable subgroup %s requirement cannot be negative, got %s", subgroup, amount)
		}
	}

	cups := make(map[VegSubgroup]decimal.Decimal, len(vegSubgroupCups))
	for subgroup, amount := range vegSubgroupCups {
		cups[subgroup] = amount
	}

	return &MealPatternRequirement{
		GradeGroup:      gradeGroup,
		MeatMAOz:        meatMAOz,
		GrainOzEq:       grainOzEq,
		FruitCups:       fruitCups,
		VegCupsTotal:    vegCupsTotal,
		VegSubgroupCups: cups,
	}, nil
}

// DefaultMealPatterns returns the built-in NSLP weekly minimums per grade
// group. The elementary row matches the district's compliance workbook;
// the others follow the published NSLP weekly tables.
func DefaultMealPatterns() []*MealPatternRequirement {
	mk := func(g GradeGroup, meat, grain, fruit, vegTotal, dg, ro, leg, st, other string) *MealPatternRequirement {
		req, err := NewMealPatternRequirement(
			g,
			decimal.RequireFromString(meat),
			decimal.RequireFromString(grain),
			decimal.RequireFromString(fruit),
			decimal.RequireFromString(vegTotal),
			map[VegSubgroup]decimal.Decimal{
				DarkGreen:  decimal.RequireFromString(dg),
				RedOrange:  decimal.RequireFromString(ro),
				LegumesVeg: decimal.RequireFromString(leg),
				Starchy:    decimal.RequireFromString(st),
				OtherVeg:   decimal.RequireFromString(other),
			},
		)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in meal pattern for %s: %v", g, err))
		}
		return req
	}

	return []*MealPatternRequirement{
		mk(PreK, "7.5", "7.5", "2.5", "2.5", "0.5", "0.5", "0.5", "0.5", "0.5"),
		mk(Elementary, "10", "8", "2.5", "3.75", "0.5", "0.75", "0.5", "0.5", "0.5"),
		mk(Middle, "10", "8", "2.5", "3.75", "0.5", "0.75", "0.5", "0.5", "0.5"),
		mk(High, "10", "10", "5", "5", "0.5", "1.25", "0.5", "0.5", "0.75"),
	}
}

// WeeklyMenuTotals holds the aggregated component amounts for a planned
// week. Derived from the planner's day-by-day menu; consumed only by the
// compliance check.
type WeeklyMenuTotals struct {
	MeatMAOz        decimal.Decimal
	GrainOzEq       decimal.Decimal
	FruitCups       decimal.Decimal
	VegCupsTotal    decimal.Decimal
	VegSubgroupCups map[VegSubgroup]decimal.Decimal
}

// VegSubgroupAmount returns the planned cups for a subgroup, zero if absent
func (w WeeklyMenuTotals) VegSubgroupAmount(subgroup VegSubgroup) decimal.Decimal {
	if amount, ok := w.VegSubgroupCups[subgroup]; ok {
		return amount
	}
	return decimal.Zero
}
