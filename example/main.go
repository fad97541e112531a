package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/application/services/allocation"
	"github.com/vsinha/commodityplan/pkg/application/services/budget"
	"github.com/vsinha/commodityplan/pkg/application/services/compliance"
	"github.com/vsinha/commodityplan/pkg/application/services/entitlement"
	"github.com/vsinha/commodityplan/pkg/domain/entities"
	"github.com/vsinha/commodityplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Build a small catalog programmatically
	groundBeef, err := entities.NewCommodityItem(
		"100158", "Beef, Fine Ground 85/15, Raw, Frozen", entities.Beef,
		decimal.NewFromInt(40), decimal.RequireFromString("3.25"), 320, true)
	if err != nil {
		log.Fatal(err)
	}

	// Patties derive servings from the Food Buying Guide yield factor
	patties, err := entities.NewCommodityItemFromYield(
		"110349", "Beef Patties, 100%, 85/15, Raw, Frozen", entities.Beef,
		decimal.NewFromInt(40), decimal.RequireFromString("3.42"),
		decimal.RequireFromString("0.74"), decimal.RequireFromString("2.0"), true)
	if err != nil {
		log.Fatal(err)
	}

	broccoli, err := entities.NewCommodityItem(
		"100307", "Broccoli, Frozen", entities.Vegetables,
		decimal.NewFromInt(30), decimal.RequireFromString("1.18"), 109, true)
	if err != nil {
		log.Fatal(err)
	}

	catalog := memory.NewCatalogRepository(3)
	if err := catalog.LoadCommodities([]*entities.CommodityItem{groundBeef, patties, broccoli}); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Running commodity allocation...")

	allocationService := allocation.NewService()
	allocations, err := allocationService.ComputeAllocation(ctx, []entities.AllocationLine{
		{CommodityID: "100158", Cases: 75},
		{CommodityID: "110349", Cases: 25},
		{CommodityID: "100307", Cases: 40},
	}, catalog)
	if err != nil {
		log.Fatal(err)
	}

	for _, alloc := range allocations {
		fmt.Printf("  %-12s $%-12s %d servings\n",
			alloc.Category, alloc.TotalCost.StringFixed(2), alloc.TotalServings)
	}

	// Ledger against a $485,000 entitlement with 20% reserved for DoD Fresh
	entitlementService := entitlement.NewService()
	ledger, err := entitlementService.ComputeLedger(allocations, entitlement.LedgerParams{
		EntitlementTotal:  decimal.NewFromInt(485000),
		ReservedFraction:  decimal.RequireFromString("0.20"),
		UtilizationTarget: decimal.NewFromInt(98),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nEntitlement: spent $%s of $%s (%s%%), remaining $%s\n",
		ledger.Spent.StringFixed(2),
		ledger.EntitlementTotal.StringFixed(2),
		ledger.UtilizationPct.StringFixed(2),
		ledger.Remaining.StringFixed(2))

	// Check a week of elementary menus against the built-in patterns
	complianceService := compliance.NewService()
	report, err := complianceService.CheckCompliance(entities.WeeklyMenuTotals{
		MeatMAOz:     decimal.RequireFromString("12.5"),
		GrainOzEq:    decimal.NewFromInt(8),
		FruitCups:    decimal.RequireFromString("2.5"),
		VegCupsTotal: decimal.RequireFromString("3.75"),
		VegSubgroupCups: map[entities.VegSubgroup]decimal.Decimal{
			entities.DarkGreen:  decimal.RequireFromString("0.5"),
			entities.RedOrange:  decimal.RequireFromString("0.75"),
			entities.LegumesVeg: decimal.RequireFromString("0.5"),
			entities.Starchy:    decimal.RequireFromString("0.5"),
			entities.OtherVeg:   decimal.RequireFromString("1.5"),
		},
	}, entities.Elementary, entities.DefaultMealPatterns())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nElementary week compliant: %t\n", report.IsCompliant)

	// Budget snapshot
	budgetService := budget.NewService()
	snapshot, err := budgetService.ComputeBudgetSnapshot(budget.SnapshotInput{
		TotalCommoditySpend: ledger.Spent,
		AnnualMeals:         3600000,
		ReimbursementRate:   decimal.RequireFromString("4.05"),
		LaborCostPerMeal:    decimal.RequireFromString("1.50"),
		OverheadCostPerMeal: decimal.RequireFromString("0.50"),
		Band:                entities.DefaultBenchmarkBand(),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Headroom: $%s/meal (food cost %s%% of reimbursement, %s benchmark band)\n",
		snapshot.Headroom.StringFixed(2),
		snapshot.FoodCostPct.StringFixed(2),
		snapshot.BenchmarkStatus)
}
