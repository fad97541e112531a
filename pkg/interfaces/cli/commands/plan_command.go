package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vsinha/commodityplan/pkg/application/dto"
	"github.com/vsinha/commodityplan/pkg/application/services/allocation"
	"github.com/vsinha/commodityplan/pkg/application/services/budget"
	"github.com/vsinha/commodityplan/pkg/application/services/compliance"
	"github.com/vsinha/commodityplan/pkg/application/services/entitlement"
	"github.com/vsinha/commodityplan/pkg/domain/entities"
	"github.com/vsinha/commodityplan/pkg/infrastructure/config"
	"github.com/vsinha/commodityplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/commodityplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/commodityplan/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	CatalogDir      string
	CommoditiesFile string
	PatternsFile    string
	ProfileFile     string
	OrderFile       string
	MenuFile        string
	GradeGroup      string
	OutputDir       string
	Format          string
	Verbose         bool
	Help            bool
}

// PlanCommand runs the full planning pipeline: allocation, entitlement
// ledger, compliance check, and budget snapshot.
type PlanCommand struct {
	config Config
	logger *zap.Logger
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config, logger *zap.Logger) *PlanCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanCommand{
		config: config,
		logger: logger,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	// Load reference data. Catalog failures are fatal: serving planning
	// numbers from a partially loaded catalog is worse than failing fast.
	loader := csv.NewLoader()

	commodities, err := loader.LoadCommodities(files["Commodities"])
	if err != nil {
		return err
	}

	patterns, err := loader.LoadMealPatterns(files["Patterns"])
	if err != nil {
		return err
	}

	profile, err := config.LoadDistrictProfile(files["Profile"])
	if err != nil {
		return err
	}

	c.logger.Info("catalog loaded",
		zap.Int("commodities", len(commodities)),
		zap.Int("meal_patterns", len(patterns)),
		zap.String("school_year", profile.SchoolYear))

	catalog := memory.NewCatalogRepository(len(commodities))
	if err := catalog.LoadCommodities(commodities); err != nil {
		return &entities.CatalogLoadError{Source: files["Commodities"], Err: err}
	}
	if err := catalog.LoadMealPatterns(patterns); err != nil {
		return &entities.CatalogLoadError{Source: files["Patterns"], Err: err}
	}

	lines, err := loader.LoadOrder(files["Order"])
	if err != nil {
		return fmt.Errorf("error loading order: %w", err)
	}

	result := dto.NewPlanResult()

	// Allocation
	allocationService := allocation.NewService()
	allocations, err := allocationService.ComputeAllocation(ctx, lines, catalog)
	if err != nil {
		return fmt.Errorf("error computing allocation: %w", err)
	}
	result.Allocations = allocations

	c.logger.Info("allocation computed",
		zap.Int("lines", len(lines)),
		zap.Int("categories", len(allocations)))

	// Entitlement ledger
	entitlementService := entitlement.NewService()
	ledger, err := entitlementService.ComputeLedger(allocations, entitlement.LedgerParams{
		EntitlementTotal:            profile.EntitlementTotal,
		ReservedFraction:            profile.ReservedFraction,
		UtilizationTarget:           profile.UtilizationTarget,
		AnnualMeals:                 profile.AnnualMeals,
		NonCommodityFoodCostPerMeal: profile.NonCommodityFoodCostPerMeal,
	})
	if err != nil {
		return fmt.Errorf("error computing ledger: %w", err)
	}
	result.Ledger = ledger

	// Compliance, when a menu file is provided
	if c.config.MenuFile != "" {
		gradeGroup, err := entities.ParseGradeGroup(c.config.GradeGroup)
		if err != nil {
			return err
		}

		totals, err := loader.LoadWeeklyMenu(c.config.MenuFile)
		if err != nil {
			return fmt.Errorf("error loading menu: %w", err)
		}

		complianceService := compliance.NewService()
		report, err := complianceService.CheckCompliance(totals, gradeGroup, patterns)
		if err != nil {
			return fmt.Errorf("error checking compliance: %w", err)
		}
		result.Compliance = report

		c.logger.Info("compliance checked",
			zap.String("grade_group", gradeGroup.String()),
			zap.Bool("compliant", report.IsCompliant))
	}

	// Budget snapshot against the weighted reimbursement rate
	budgetService := budget.NewService()
	rate := budget.WeightedReimbursementRate(profile.Rates, profile.Demographics, profile.Certifications)
	snapshot, err := budgetService.ComputeBudgetSnapshot(budget.SnapshotInput{
		TotalCommoditySpend: ledger.Spent,
		AnnualMeals:         profile.AnnualMeals,
		ReimbursementRate:   rate,
		LaborCostPerMeal:    profile.LaborCostPerMeal,
		OverheadCostPerMeal: profile.OverheadCostPerMeal,
		Band:                profile.BenchmarkBand,
	})
	if err != nil {
		return fmt.Errorf("error computing budget snapshot: %w", err)
	}
	result.Budget = &snapshot

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if c.config.CatalogDir == "" &&
		(c.config.CommoditiesFile == "" || c.config.PatternsFile == "" || c.config.ProfileFile == "") {
		return fmt.Errorf("must specify either -catalog directory or individual commodities/patterns/profile files")
	}
	if c.config.OrderFile == "" {
		return fmt.Errorf("must specify -order file")
	}
	if c.config.MenuFile != "" && c.config.GradeGroup == "" {
		return fmt.Errorf("-grade is required when -menu is provided")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	var commoditiesPath, patternsPath, profilePath string

	if c.config.CatalogDir != "" {
		commoditiesPath = filepath.Join(c.config.CatalogDir, "commodities.csv")
		patternsPath = filepath.Join(c.config.CatalogDir, "meal_patterns.csv")
		profilePath = filepath.Join(c.config.CatalogDir, "district.yaml")
	} else {
		commoditiesPath = c.config.CommoditiesFile
		patternsPath = c.config.PatternsFile
		profilePath = c.config.ProfileFile
	}

	files := map[string]string{
		"Commodities": commoditiesPath,
		"Patterns":    patternsPath,
		"Profile":     profilePath,
		"Order":       c.config.OrderFile,
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// showHelp displays the help message
func (c *PlanCommand) showHelp() {
	fmt.Printf(`Commodity Plan CLI - USDA Entitlement Allocation and Menu Compliance

USAGE:
    commodityplan -catalog <directory> -order <file>         # Catalog directory
    commodityplan -commodities <file> -patterns <file> ...   # Individual files

OPTIONS:
    -catalog <dir>      Path to catalog directory (commodities.csv, meal_patterns.csv, district.yaml)
    -commodities <file> Path to commodities CSV file
    -patterns <file>    Path to meal patterns CSV file
    -profile <file>     Path to district profile YAML file
    -order <file>       Path to order CSV file (required)
    -menu <file>        Path to weekly menu CSV file (optional)
    -grade <group>      Grade group for compliance: pre_k, elementary, middle, high
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

CATALOG DIRECTORY STRUCTURE:
    catalog/
    ├── commodities.csv     # Commodity reference data
    ├── meal_patterns.csv   # USDA weekly meal-pattern minimums
    └── district.yaml       # District financial profile

CSV FILE FORMATS:

commodities.csv:
    commodity_id,description,category,case_weight_lbs,cost_per_lb,servings_per_case,yield_factor,serving_size_oz,recommended,calories_per_serving,protein_g_per_serving
    100158,Beef Fine Ground 85/15 Raw,beef,40,3.25,320,,,true,172,15

meal_patterns.csv:
    grade_group,meat_ma_oz,grain_oz_eq,fruit_cups,veg_cups_total,dark_green_cups,red_orange_cups,legumes_cups,starchy_cups,other_cups
    elementary,10,8,2.5,3.75,0.5,0.75,0.5,0.5,0.5

order.csv:
    commodity_id,cases
    100158,75

menu.csv:
    component,amount
    meat_ma,12.5
    grain,6
    veg_dark_green,0.5
    fruit,2.5

EXAMPLES:
    # Run a full plan with compliance for elementary
    commodityplan -catalog examples/district_scenario -order order.csv -menu menu.csv -grade elementary -verbose

    # Allocation and budget only, JSON output
    commodityplan -catalog examples/district_scenario -order order.csv -format json -output results/
`)
}
