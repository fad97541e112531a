package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/application/dto"
	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.PlanResult, config Config) error {
	fmt.Printf("Commodity Plan Summary (run %s)\n", result.RunID)
	fmt.Printf("================================\n\n")

	rows := dto.BuildOrderSummary(result.Allocations)
	if len(rows) > 0 {
		fmt.Printf("Order Summary:\n")
		fmt.Printf("%-12s %-12s %-32s %8s %12s %12s %10s\n",
			"Category", "Commodity", "Description", "Cases", "Weight (lb)", "Cost", "Servings")
		fmt.Printf("%-12s %-12s %-32s %8s %12s %12s %10s\n",
			"------------", "------------", "--------------------------------",
			"--------", "------------", "------------", "----------")

		for _, row := range rows {
			fmt.Printf("%-12s %-12s %-32s %8d %12s %12s %10d\n",
				row.Category,
				row.CommodityID,
				truncate(row.Description, 32),
				row.Cases,
				row.WeightLbs.StringFixed(1),
				"$"+row.Cost.StringFixed(2),
				row.Servings)
		}
		fmt.Println()

		fmt.Printf("Category Totals:\n")
		for _, alloc := range result.Allocations {
			fmt.Printf("  %-12s $%-12s %d servings\n",
				alloc.Category, alloc.TotalCost.StringFixed(2), alloc.TotalServings)
		}
		fmt.Println()
	}

	printLedger(result.Ledger)

	if result.Compliance != nil {
		printCompliance(result.Compliance)
	}

	if result.Budget != nil {
		printBudget(result.Budget)
	}

	return nil
}

func printLedger(ledger entities.EntitlementLedger) {
	fmt.Printf("Entitlement Ledger:\n")
	fmt.Printf("  Entitlement:   $%s\n", ledger.EntitlementTotal.StringFixed(2))
	fmt.Printf("  Reserved:      $%s (%s%%)\n",
		ledger.ReservedAllocation.StringFixed(2),
		ledger.ReservedFraction.Mul(decimal.NewFromInt(100)).StringFixed(0))
	fmt.Printf("  Spent:         $%s\n", ledger.Spent.StringFixed(2))
	fmt.Printf("  Remaining:     $%s\n", ledger.Remaining.StringFixed(2))
	fmt.Printf("  Utilization:   %s%%\n", ledger.UtilizationPct.StringFixed(2))
	if ledger.OverAllocated {
		fmt.Printf("  WARNING: entitlement over-allocated\n")
	}
	if ledger.UnderUtilized {
		fmt.Printf("  WARNING: entitlement under-utilized\n")
	}
	if ledger.BelowTarget {
		fmt.Printf("  NOTE: utilization below %s%% target\n", ledger.UtilizationTarget.StringFixed(0))
	}
	if ledger.CommodityShareDefined {
		fmt.Printf("  Commodity share of food cost: %s%%\n", ledger.CommodityShareOfFood.StringFixed(1))
	}
	fmt.Println()
}

func printCompliance(report *entities.ComplianceReport) {
	fmt.Printf("Compliance (%s): ", report.GradeGroup)
	if report.IsCompliant {
		fmt.Printf("PASS\n")
	} else {
		fmt.Printf("FAIL\n")
	}

	fmt.Printf("%-12s %10s %10s %10s\n", "Component", "Required", "Actual", "Deficit")
	fmt.Printf("%-12s %10s %10s %10s\n", "------------", "----------", "----------", "----------")
	for _, f := range report.Findings {
		fmt.Printf("%-12s %10s %10s %10s\n",
			f.Component,
			f.Required.StringFixed(2),
			f.Actual.StringFixed(2),
			f.Deficit.StringFixed(2))
	}
	fmt.Println()
}

func printBudget(snapshot *entities.BudgetSnapshot) {
	fmt.Printf("Budget Snapshot:\n")
	fmt.Printf("  Reimbursement rate:  $%s\n", snapshot.ReimbursementRate.StringFixed(2))
	if !snapshot.FoodCostDefined {
		fmt.Printf("  Food cost per meal:  undefined (no meals recorded)\n\n")
		return
	}
	fmt.Printf("  Food cost per meal:  $%s\n", snapshot.FoodCostPerMeal.StringFixed(2))
	fmt.Printf("  Labor per meal:      $%s\n", snapshot.LaborCostPerMeal.StringFixed(2))
	fmt.Printf("  Overhead per meal:   $%s\n", snapshot.OverheadCostPerMeal.StringFixed(2))
	fmt.Printf("  Headroom:            $%s\n", snapshot.Headroom.StringFixed(2))
	fmt.Printf("  Food cost pct:       %s%% (benchmark: %s)\n",
		snapshot.FoodCostPct.StringFixed(2), snapshot.BenchmarkStatus)
	fmt.Printf("  Annual upgrade fund: $%s\n", snapshot.AnnualUpgradeFund.StringFixed(2))
	fmt.Println()
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.PlanResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "plan_result.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates CSV output files
func generateCSVOutput(result *dto.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryFile := filepath.Join(config.OutputDir, "order_summary.csv")
	if err := writeOrderSummaryCSV(dto.BuildOrderSummary(result.Allocations), summaryFile); err != nil {
		return fmt.Errorf("failed to write order summary CSV: %w", err)
	}

	ledgerFile := filepath.Join(config.OutputDir, "ledger.csv")
	if err := writeLedgerCSV(result.Ledger, ledgerFile); err != nil {
		return fmt.Errorf("failed to write ledger CSV: %w", err)
	}

	if result.Compliance != nil {
		findingsFile := filepath.Join(config.OutputDir, "compliance_findings.csv")
		if err := writeFindingsCSV(result.Compliance, findingsFile); err != nil {
			return fmt.Errorf("failed to write compliance findings CSV: %w", err)
		}
	}

	if config.Verbose {
		fmt.Printf("CSV results saved to: %s\n", config.OutputDir)
	}

	return nil
}

func writeOrderSummaryCSV(rows []dto.OrderSummaryRow, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"category", "commodity_id", "description", "cases", "weight_lbs", "cost", "servings"}); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Category,
			row.CommodityID,
			row.Description,
			fmt.Sprintf("%d", row.Cases),
			row.WeightLbs.String(),
			row.Cost.StringFixed(2),
			fmt.Sprintf("%d", row.Servings),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeLedgerCSV(ledger entities.EntitlementLedger, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	records := [][]string{
		{"field", "value"},
		{"entitlement_total", ledger.EntitlementTotal.StringFixed(2)},
		{"reserved_allocation", ledger.ReservedAllocation.StringFixed(2)},
		{"general_allocation", ledger.GeneralAllocation.StringFixed(2)},
		{"spent", ledger.Spent.StringFixed(2)},
		{"remaining", ledger.Remaining.StringFixed(2)},
		{"utilization_pct", ledger.UtilizationPct.StringFixed(2)},
		{"under_utilized", fmt.Sprintf("%t", ledger.UnderUtilized)},
		{"over_allocated", fmt.Sprintf("%t", ledger.OverAllocated)},
	}

	return w.WriteAll(records)
}

func writeFindingsCSV(report *entities.ComplianceReport, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"grade_group", "component", "required", "actual", "deficit"}); err != nil {
		return err
	}

	for _, f := range report.Findings {
		record := []string{
			report.GradeGroup.String(),
			f.Component,
			f.Required.String(),
			f.Actual.String(),
			f.Deficit.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
