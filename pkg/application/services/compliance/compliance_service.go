// Package compliance checks a week's menu totals against the USDA meal
// pattern for a grade group. The check is pure and total: identical
// menus always yield identical verdicts.
package compliance

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

// Tolerance absorbs floating-point noise when comparing amounts, so a
// menu that meets a requirement exactly is never flagged deficient.
var Tolerance = decimal.New(1, -6) // 1e-6

// Service implements the meal-pattern compliance check
type Service struct{}

// NewService creates a new compliance service
func NewService() *Service {
	return &Service{}
}

// CheckCompliance compares the weekly totals against the requirement for
// the given grade group. Every tracked component gets its own finding;
// vegetable subgroup findings are independent of the vegetable total
// finding, so a menu with enough total cups but an empty subgroup fails
// on that subgroup alone.
func (s *Service) CheckCompliance(
	totals entities.WeeklyMenuTotals,
	gradeGroup entities.GradeGroup,
	requirements []*entities.MealPatternRequirement,
) (*entities.ComplianceReport, error) {
	var requirement *entities.MealPatternRequirement
	for _, req := range requirements {
		if req.GradeGroup == gradeGroup {
			requirement = req
			break
		}
	}
	if requirement == nil {
		return nil, &entities.UnknownGradeGroupError{GradeGroup: gradeGroup}
	}

	findings := []entities.ComplianceFinding{
		newFinding(entities.ComponentMeatMA, requirement.MeatMAOz, totals.MeatMAOz),
		newFinding(entities.ComponentGrain, requirement.GrainOzEq, totals.GrainOzEq),
		newFinding(entities.ComponentVegTotal, requirement.VegCupsTotal, totals.VegCupsTotal),
	}

	for _, subgroup := range entities.AllVegSubgroups() {
		findings = append(findings, newFinding(
			subgroup.String(),
			requirement.VegSubgroupCups[subgroup],
			totals.VegSubgroupAmount(subgroup),
		))
	}

	findings = append(findings, newFinding(entities.ComponentFruit, requirement.FruitCups, totals.FruitCups))

	compliant := true
	for _, f := range findings {
		if f.Deficit.GreaterThan(Tolerance) {
			compliant = false
			break
		}
	}

	return &entities.ComplianceReport{
		GradeGroup:  gradeGroup,
		IsCompliant: compliant,
		Findings:    findings,
	}, nil
}

// newFinding builds a finding with deficit = max(0, required - actual)
func newFinding(component string, required, actual decimal.Decimal) entities.ComplianceFinding {
	deficit := required.Sub(actual)
	if deficit.IsNegative() {
		deficit = decimal.Zero
	}
	return entities.ComplianceFinding{
		Component: component,
		Required:  required,
		Actual:    actual,
		Deficit:   deficit,
	}
}
