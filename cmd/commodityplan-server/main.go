package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
	"github.com/vsinha/commodityplan/pkg/infrastructure/config"
	"github.com/vsinha/commodityplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/commodityplan/pkg/infrastructure/repositories/memory"
	httpapi "github.com/vsinha/commodityplan/pkg/interfaces/http"
)

func main() {
	// Optional .env for local development; a real deployment sets env vars
	_ = godotenv.Load()

	var (
		addr       = flag.String("addr", envOr("COMMODITYPLAN_ADDR", ":8080"), "Listen address")
		catalogDir = flag.String("catalog", envOr("COMMODITYPLAN_CATALOG", "examples/district_scenario"), "Path to catalog directory")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	// Load the catalog once at startup. A bad catalog blocks startup:
	// serving planning numbers from partial reference data is worse
	// than failing fast.
	loader := csv.NewLoader()

	commodities, err := loader.LoadCommodities(*catalogDir + "/commodities.csv")
	if err != nil {
		logger.Fatal("catalog load failed", zap.Error(err))
	}

	patterns, err := loader.LoadMealPatterns(*catalogDir + "/meal_patterns.csv")
	if err != nil {
		logger.Fatal("meal pattern load failed", zap.Error(err))
	}

	profile, err := config.LoadDistrictProfile(*catalogDir + "/district.yaml")
	if err != nil {
		logger.Fatal("district profile load failed", zap.Error(err))
	}

	catalog := memory.NewCatalogRepository(len(commodities))
	if err := catalog.LoadCommodities(commodities); err != nil {
		logger.Fatal("catalog load failed", zap.Error(&entities.CatalogLoadError{Source: *catalogDir, Err: err}))
	}
	if err := catalog.LoadMealPatterns(patterns); err != nil {
		logger.Fatal("catalog load failed", zap.Error(&entities.CatalogLoadError{Source: *catalogDir, Err: err}))
	}

	logger.Info("catalog loaded",
		zap.Int("commodities", len(commodities)),
		zap.Int("meal_patterns", len(patterns)),
		zap.String("school_year", profile.SchoolYear))

	handler := httpapi.NewHandler(catalog, profile)
	router := httpapi.NewRouter(handler, logger)

	logger.Info("server starting", zap.String("addr", *addr))
	if err := router.Run(*addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
