// Package allocation converts commodity case selections into cost,
// weight, and serving totals per category.
package allocation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
	"github.com/vsinha/commodityplan/pkg/domain/repositories"
)

// Service implements the allocation computation. It holds no state:
// output is a pure function of (lines, catalog).
type Service struct{}

// NewService creates a new allocation service
func NewService() *Service {
	return &Service{}
}

// ComputeAllocation computes per-line weight, cost, and servings for the
// given selections and groups them into category aggregates.
//
// Per-line cost is rounded half-up to cents exactly once, on the line
// total, so rounding error never compounds across cases. Category totals
// are exact sums of the already-rounded line costs.
//
// A zero-quantity line is treated identically to an absent line. Any
// line referencing an unknown commodity fails the whole computation with
// an UnknownCommodityError: no partial results are returned.
func (s *Service) ComputeAllocation(
	ctx context.Context,
	lines []entities.AllocationLine,
	catalog repositories.CatalogRepository,
) ([]entities.CategoryAllocation, error) {
	byCategory := make(map[entities.Category]*entities.CategoryAllocation)

	for i, line := range lines {
		if line.Cases < 0 {
			return nil, fmt.Errorf("allocation line %d: case quantity cannot be negative, got %d", i+1, line.Cases)
		}
		if line.Cases == 0 {
			continue
		}

		item, err := catalog.GetCommodity(line.CommodityID)
		if err != nil {
			return nil, &entities.UnknownCommodityError{ID: line.CommodityID}
		}

		result := computeLine(line, item)

		agg, ok := byCategory[item.Category]
		if !ok {
			agg = &entities.CategoryAllocation{
				Category:       item.Category,
				TotalCost:      decimal.Zero,
				TotalWeightLbs: decimal.Zero,
			}
			byCategory[item.Category] = agg
		}

		agg.TotalCost = agg.TotalCost.Add(result.Cost)
		agg.TotalWeightLbs = agg.TotalWeightLbs.Add(result.WeightLbs)
		agg.TotalServings += result.Servings
		agg.Lines = append(agg.Lines, result)
	}

	// Stable category order so identical input yields identical output
	var allocations []entities.CategoryAllocation
	for _, category := range entities.AllCategories() {
		if agg, ok := byCategory[category]; ok {
			allocations = append(allocations, *agg)
		}
	}

	return allocations, nil
}

// computeLine derives the values for a single line per the catalog entry
func computeLine(line entities.AllocationLine, item *entities.CommodityItem) entities.LineResult {
	cases := decimal.NewFromInt(line.Cases)
	weight := cases.Mul(item.CaseWeightLbs)
	cost := weight.Mul(item.CostPerLb).Round(2)

	return entities.LineResult{
		CommodityID: item.ID,
		Description: item.Description,
		Category:    item.Category,
		Cases:       line.Cases,
		WeightLbs:   weight,
		Cost:        cost,
		Servings:    line.Cases * item.ServingsPerCase,
	}
}
