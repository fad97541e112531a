package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadCommodities loads the commodity catalog from a CSV file. Any row
// violating a catalog invariant fails the whole load: the engine refuses
// to start on bad reference data rather than substitute defaults.
func (l *Loader) LoadCommodities(filename string) ([]*entities.CommodityItem, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, &entities.CatalogLoadError{Source: filename, Err: err}
	}

	expectedHeader := []string{
		"commodity_id", "description", "category", "case_weight_lbs", "cost_per_lb",
		"servings_per_case", "yield_factor", "serving_size_oz", "recommended",
		"calories_per_serving", "protein_g_per_serving",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, &entities.CatalogLoadError{
			Source: filename,
			Err:    fmt.Errorf("commodities CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0]),
		}
	}

	var items []*entities.CommodityItem
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, &entities.CatalogLoadError{
				Source: filename,
				Err:    fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record)),
			}
		}

		item, err := parseCommodity(record)
		if err != nil {
			return nil, &entities.CatalogLoadError{
				Source: filename,
				Err:    fmt.Errorf("row %d: %w", i+2, err),
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// LoadMealPatterns loads the weekly meal-pattern requirement table from
// a CSV file, one row per grade group.
func (l *Loader) LoadMealPatterns(filename string) ([]*entities.MealPatternRequirement, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, &entities.CatalogLoadError{Source: filename, Err: err}
	}

	expectedHeader := []string{
		"grade_group", "meat_ma_oz", "grain_oz_eq", "fruit_cups", "veg_cups_total",
		"dark_green_cups", "red_orange_cups", "legumes_cups", "starchy_cups", "other_cups",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, &entities.CatalogLoadError{
			Source: filename,
			Err:    fmt.Errorf("meal patterns CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0]),
		}
	}

	var patterns []*entities.MealPatternRequirement
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, &entities.CatalogLoadError{
				Source: filename,
				Err:    fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record)),
			}
		}

		pattern, err := parseMealPattern(record)
		if err != nil {
			return nil, &entities.CatalogLoadError{
				Source: filename,
				Err:    fmt.Errorf("row %d: %w", i+2, err),
			}
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

// LoadOrder loads a planner's allocation lines from a CSV file
func (l *Loader) LoadOrder(filename string) ([]entities.AllocationLine, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"commodity_id", "cases"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("order CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var lines []entities.AllocationLine
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("order CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		cases, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("order CSV row %d: invalid cases: %s", i+2, record[1])
		}

		line, err := entities.NewAllocationLine(entities.CommodityID(record[0]), cases)
		if err != nil {
			return nil, fmt.Errorf("order CSV row %d: %w", i+2, err)
		}

		lines = append(lines, *line)
	}

	return lines, nil
}

// LoadWeeklyMenu loads a week's aggregated component amounts from a CSV
// file of (component, amount) rows. The vegetable total defaults to the
// sum of the subgroup rows; an explicit veg_total row overrides it.
func (l *Loader) LoadWeeklyMenu(filename string) (entities.WeeklyMenuTotals, error) {
	var totals entities.WeeklyMenuTotals

	records, err := readAll(filename)
	if err != nil {
		return totals, err
	}

	expectedHeader := []string{"component", "amount"}
	if !validateHeader(records[0], expectedHeader) {
		return totals, fmt.Errorf("menu CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	totals.VegSubgroupCups = make(map[entities.VegSubgroup]decimal.Decimal)
	vegTotalExplicit := false

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return totals, fmt.Errorf("menu CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		amount, err := decimal.NewFromString(record[1])
		if err != nil {
			return totals, fmt.Errorf("menu CSV row %d: invalid amount: %s", i+2, record[1])
		}
		if amount.IsNegative() {
			return totals, fmt.Errorf("menu CSV row %d: amount cannot be negative, got %s", i+2, amount)
		}

		component := strings.ToLower(strings.TrimSpace(record[0]))
		switch component {
		case entities.ComponentMeatMA:
			totals.MeatMAOz = totals.MeatMAOz.Add(amount)
		case entities.ComponentGrain:
			totals.GrainOzEq = totals.GrainOzEq.Add(amount)
		case entities.ComponentFruit:
			totals.FruitCups = totals.FruitCups.Add(amount)
		case entities.ComponentVegTotal:
			totals.VegCupsTotal = totals.VegCupsTotal.Add(amount)
			vegTotalExplicit = true
		default:
			subgroupName, ok := strings.CutPrefix(component, "veg_")
			if !ok {
				return totals, fmt.Errorf("menu CSV row %d: unknown component: %s", i+2, record[0])
			}
			subgroup, err := entities.ParseVegSubgroup(subgroupName)
			if err != nil {
				return totals, fmt.Errorf("menu CSV row %d: %w", i+2, err)
			}
			totals.VegSubgroupCups[subgroup] = totals.VegSubgroupCups[subgroup].Add(amount)
		}
	}

	if !vegTotalExplicit {
		for _, amount := range totals.VegSubgroupCups {
			totals.VegCupsTotal = totals.VegCupsTotal.Add(amount)
		}
	}

	return totals, nil
}

// Helper functions for parsing CSV records

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("CSV must have header and at least one data row")
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseCommodity(record []string) (*entities.CommodityItem, error) {
	id := entities.CommodityID(record[0])
	description := record[1]

	category, err := entities.ParseCategory(record[2])
	if err != nil {
		return nil, err
	}

	caseWeight, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid case_weight_lbs: %s", record[3])
	}

	costPerLb, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid cost_per_lb: %s", record[4])
	}

	recommended, err := parseBool(record[8])
	if err != nil {
		return nil, fmt.Errorf("invalid recommended flag: %s", record[8])
	}

	var item *entities.CommodityItem

	// Servings per case comes directly from the product information
	// sheet when present; otherwise it is derived from the Food Buying
	// Guide yield factor and serving size.
	if record[5] != "" {
		servings, parseErr := strconv.ParseInt(record[5], 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid servings_per_case: %s", record[5])
		}
		item, err = entities.NewCommodityItem(id, description, category, caseWeight, costPerLb, servings, recommended)
		if err != nil {
			return nil, err
		}
	} else {
		if record[6] == "" || record[7] == "" {
			return nil, fmt.Errorf("commodity %s: servings_per_case absent and yield_factor/serving_size_oz not both provided", id)
		}
		yieldFactor, parseErr := decimal.NewFromString(record[6])
		if parseErr != nil {
			return nil, fmt.Errorf("invalid yield_factor: %s", record[6])
		}
		servingSize, parseErr := decimal.NewFromString(record[7])
		if parseErr != nil {
			return nil, fmt.Errorf("invalid serving_size_oz: %s", record[7])
		}
		item, err = entities.NewCommodityItemFromYield(id, description, category, caseWeight, costPerLb, yieldFactor, servingSize, recommended)
		if err != nil {
			return nil, err
		}
	}

	if record[9] != "" {
		calories, err := decimal.NewFromString(record[9])
		if err != nil {
			return nil, fmt.Errorf("invalid calories_per_serving: %s", record[9])
		}
		item.CaloriesPerServing = calories
	}
	if record[10] != "" {
		protein, err := decimal.NewFromString(record[10])
		if err != nil {
			return nil, fmt.Errorf("invalid protein_g_per_serving: %s", record[10])
		}
		item.ProteinPerServing = protein
	}

	return item, nil
}

func parseMealPattern(record []string) (*entities.MealPatternRequirement, error) {
	gradeGroup, err := entities.ParseGradeGroup(record[0])
	if err != nil {
		return nil, err
	}

	amounts := make([]decimal.Decimal, 9)
	names := []string{
		"meat_ma_oz", "grain_oz_eq", "fruit_cups", "veg_cups_total",
		"dark_green_cups", "red_orange_cups", "legumes_cups", "starchy_cups", "other_cups",
	}
	for i := range amounts {
		amounts[i], err = decimal.NewFromString(record[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", names[i], record[i+1])
		}
	}

	return entities.NewMealPatternRequirement(
		gradeGroup,
		amounts[0], amounts[1], amounts[2], amounts[3],
		map[entities.VegSubgroup]decimal.Decimal{
			entities.DarkGreen:  amounts[4],
			entities.RedOrange:  amounts[5],
			entities.LegumesVeg: amounts[6],
			entities.Starchy:    amounts[7],
			entities.OtherVeg:   amounts[8],
		},
	)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("expected true or false, got %s", s)
	}
}
