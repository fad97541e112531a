package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComplianceReport_DeficientFindings(t *testing.T) {
	report := ComplianceReport{
		Findings: []ComplianceFinding{
			{Component: ComponentMeatMA, Deficit: decimal.Zero},
			{Component: ComponentGrain, Deficit: decimal.NewFromInt(2)},
			{Component: "red_orange", Deficit: decimal.RequireFromString("0.5")},
			{Component: ComponentFruit, Deficit: decimal.New(1, -9)}, // below tolerance
		},
	}

	deficient := report.DeficientFindings(decimal.New(1, -6))
	if len(deficient) != 2 {
		t.Fatalf("Expected 2 deficient findings, got %d", len(deficient))
	}
	if deficient[0].Component != ComponentGrain {
		t.Errorf("Expected grain first, got %s", deficient[0].Component)
	}
	if deficient[1].Component != "red_orange" {
		t.Errorf("Expected red_orange second, got %s", deficient[1].Component)
	}
}
