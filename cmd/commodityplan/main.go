package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vsinha/commodityplan/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		catalogDir = flag.String(
			"catalog",
			"",
			"Path to catalog directory containing commodities.csv, meal_patterns.csv, district.yaml",
		)
		commoditiesFile = flag.String("commodities", "", "Path to commodities CSV file")
		patternsFile    = flag.String("patterns", "", "Path to meal patterns CSV file")
		profileFile     = flag.String("profile", "", "Path to district profile YAML file")
		orderFile       = flag.String("order", "", "Path to order CSV file")
		menuFile        = flag.String("menu", "", "Path to weekly menu CSV file (optional)")
		gradeGroup      = flag.String("grade", "", "Grade group for compliance: pre_k, elementary, middle, high")
		outputDir       = flag.String("output", "", "Output directory for results (optional)")
		format          = flag.String("format", "text", "Output format: text, json, csv")
		verbose         = flag.Bool("verbose", false, "Enable verbose output")
		help            = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	// Create command configuration
	config := commands.Config{
		CatalogDir:      *catalogDir,
		CommoditiesFile: *commoditiesFile,
		PatternsFile:    *patternsFile,
		ProfileFile:     *profileFile,
		OrderFile:       *orderFile,
		MenuFile:        *menuFile,
		GradeGroup:      *gradeGroup,
		OutputDir:       *outputDir,
		Format:          *format,
		Verbose:         *verbose,
		Help:            *help,
	}

	// Create and execute command
	cmd := commands.NewPlanCommand(config, logger)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
