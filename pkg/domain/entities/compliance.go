package entities

import "github.com/shopspring/decimal"

// Component names used in compliance findings
const (
	ComponentMeatMA   = "meat_ma"
	ComponentGrain    = "grain"
	ComponentVegTotal = "veg_total"
	ComponentFruit    = "fruit"
)

// ComplianceFinding compares one tracked menu component against its
// weekly requirement. Deficit is max(0, required - actual).
type ComplianceFinding struct {
	Component string
	Required  decimal.Decimal
	Actual    decimal.Decimal
	Deficit   decimal.Decimal
}

// ComplianceReport is the result of checking one week's menu totals
// against a grade group's meal pattern. Subgroup findings are reported
// independently of the vegetable total finding.
type ComplianceReport struct {
	GradeGroup  GradeGroup
	IsCompliant bool
	Findings    []ComplianceFinding
}

// DeficientFindings returns only the findings with a nonzero deficit,
// using the given tolerance to absorb floating-point noise.
func (r ComplianceReport) DeficientFindings(tolerance decimal.Decimal) []ComplianceFinding {
	var deficient []ComplianceFinding
	for _, f := range r.Findings {
		if f.Deficit.GreaterThan(tolerance) {
			deficient = append(deficient, f)
		}
	}
	return deficient
}
