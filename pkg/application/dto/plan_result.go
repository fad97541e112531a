package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

// PlanResult contains the complete output of one planning run
type PlanResult struct {
	RunID       string                        `json:"run_id"`
	GeneratedAt time.Time                     `json:"generated_at"`
	Allocations []entities.CategoryAllocation `json:"allocations"`
	Ledger      entities.EntitlementLedger    `json:"ledger"`
	Compliance  *entities.ComplianceReport    `json:"compliance,omitempty"`
	Budget      *entities.BudgetSnapshot      `json:"budget,omitempty"`
}

// NewPlanResult stamps a plan result with a run identifier and timestamp
func NewPlanResult() *PlanResult {
	return &PlanResult{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

// OrderSummaryRow is one row of the tabular order summary consumed by
// export/report generators. Field names are stable.
type OrderSummaryRow struct {
	Category    string          `json:"category"`
	CommodityID string          `json:"commodity_id"`
	Description string          `json:"description"`
	Cases       int64           `json:"cases"`
	WeightLbs   decimal.Decimal `json:"weight_lbs"`
	Cost        decimal.Decimal `json:"cost"`
	Servings    int64           `json:"servings"`
}

// BuildOrderSummary flattens category allocations into summary rows,
// preserving category then line order
func BuildOrderSummary(allocations []entities.CategoryAllocation) []OrderSummaryRow {
	var rows []OrderSummaryRow
	for _, alloc := range allocations {
		for _, line := range alloc.Lines {
			rows = append(rows, OrderSummaryRow{
				Category:    alloc.Category.String(),
				CommodityID: string(line.CommodityID),
				Description: line.Description,
				Cases:       line.Cases,
				WeightLbs:   line.WeightLbs,
				Cost:        line.Cost,
				Servings:    line.Servings,
			})
		}
	}
	return rows
}
