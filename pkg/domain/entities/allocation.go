package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AllocationLine represents a planner's selection of a commodity and a
// whole-case quantity. A zero-quantity line is equivalent to no line.
type AllocationLine struct {
	CommodityID CommodityID
	Cases       int64
}

// NewAllocationLine creates a validated AllocationLine
func NewAllocationLine(commodityID CommodityID, cases int64) (*AllocationLine, error) {
	if string(commodityID) == "" {
		return nil, fmt.Errorf("commodity id cannot be empty")
	}
	if cases < 0 {
		return nil, fmt.Errorf("case quantity cannot be negative, got %d", cases)
	}

	return &AllocationLine{
		CommodityID: commodityID,
		Cases:       cases,
	}, nil
}

// LineResult holds the derived values for a single allocation line.
// These are never stored; they are recomputed from the line and catalog.
type LineResult struct {
	CommodityID CommodityID
	Description string
	Category    Category
	Cases       int64
	WeightLbs   decimal.Decimal
	// Cost is the per-line total, rounded half-up to cents exactly once
	Cost     decimal.Decimal
	Servings int64
}

// CategoryAllocation aggregates allocation lines sharing a category.
// It is a pure function of its lines: totals are exact sums of the
// already-rounded line costs, never re-derived from unrounded weight.
type CategoryAllocation struct {
	Category       Category
	TotalCost      decimal.Decimal
	TotalWeightLbs decimal.Decimal
	TotalServings  int64
	Lines          []LineResult
}
