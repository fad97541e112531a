package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
	"github.com/vsinha/commodityplan/pkg/infrastructure/config"
	"github.com/vsinha/commodityplan/pkg/infrastructure/repositories/memory"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mk := func(id entities.CommodityID, desc string, category entities.Category, caseWeight, costPerLb string, servings int64) *entities.CommodityItem {
		item, err := entities.NewCommodityItem(
			id, desc, category,
			decimal.RequireFromString(caseWeight),
			decimal.RequireFromString(costPerLb),
			servings, true)
		require.NoError(t, err)
		return item
	}

	catalog := memory.NewCatalogRepository(2)
	require.NoError(t, catalog.LoadCommodities([]*entities.CommodityItem{
		mk("100158", "Beef, Fine Ground 85/15", entities.Beef, "40", "3.25", 320),
		mk("100307", "Broccoli, Frozen", entities.Vegetables, "30", "1.18", 109),
	}))
	require.NoError(t, catalog.LoadMealPatterns(entities.DefaultMealPatterns()))

	demographics, err := entities.NewDemographics(
		decimal.RequireFromString("0.62"),
		decimal.RequireFromString("0.07"),
		decimal.RequireFromString("0.31"))
	require.NoError(t, err)

	profile := &config.DistrictProfile{
		SchoolYear:        "2025-26",
		EntitlementTotal:  decimal.NewFromInt(485000),
		ReservedFraction:  decimal.RequireFromString("0.20"),
		UtilizationTarget: decimal.NewFromInt(98),
		AnnualMeals:       3600000,

		NonCommodityFoodCostPerMeal: decimal.RequireFromString("0.95"),
		LaborCostPerMeal:            decimal.RequireFromString("1.50"),
		OverheadCostPerMeal:         decimal.RequireFromString("0.50"),

		BenchmarkBand: entities.DefaultBenchmarkBand(),
		Rates: entities.ReimbursementRates{
			FreeLunchBase:    decimal.RequireFromString("4.05"),
			ReducedLunchBase: decimal.RequireFromString("3.65"),
			PaidLunchBase:    decimal.RequireFromString("0.48"),
		},
		Demographics: demographics,
	}

	return NewRouter(NewHandler(catalog, profile), zap.NewNop())
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealth(t *testing.T) {
	router := testRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestListCommodities(t *testing.T) {
	router := testRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/commodities", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Commodities []CommodityResponse `json:"commodities"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Commodities, 2)

	t.Run("filtered by category", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/api/commodities?category=beef", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Commodities []CommodityResponse `json:"commodities"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		require.Len(t, response.Commodities, 1)
		assert.Equal(t, "100158", response.Commodities[0].ID)
	})

	t.Run("invalid category", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodGet, "/api/commodities?category=candy", nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestAllocate(t *testing.T) {
	router := testRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/allocate", AllocateRequest{
		Lines: []AllocateLine{{CommodityID: "100158", Cases: 75}},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Allocations []struct {
			TotalCost     decimal.Decimal `json:"TotalCost"`
			TotalServings int64           `json:"TotalServings"`
		} `json:"allocations"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Allocations, 1)
	assert.True(t, response.Allocations[0].TotalCost.Equal(decimal.RequireFromString("9750")),
		"got cost %s", response.Allocations[0].TotalCost)
	assert.Equal(t, int64(24000), response.Allocations[0].TotalServings)
}

func TestAllocate_Errors(t *testing.T) {
	router := testRouter(t)

	t.Run("unknown commodity", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/allocate", AllocateRequest{
			Lines: []AllocateLine{{CommodityID: "999999", Cases: 10}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "unknown commodity: 999999")
	})

	t.Run("negative cases", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/allocate", AllocateRequest{
			Lines: []AllocateLine{{CommodityID: "100158", Cases: -5}},
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/allocate", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestLedger(t *testing.T) {
	router := testRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/ledger", AllocateRequest{
		Lines: []AllocateLine{{CommodityID: "100158", Cases: 75}},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Ledger struct {
			Spent         decimal.Decimal `json:"Spent"`
			Remaining     decimal.Decimal `json:"Remaining"`
			UnderUtilized bool            `json:"UnderUtilized"`
		} `json:"ledger"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Ledger.Spent.Equal(decimal.RequireFromString("9750")))
	assert.True(t, response.Ledger.Remaining.Equal(decimal.RequireFromString("475250")))
	assert.True(t, response.Ledger.UnderUtilized)
}

func TestCompliance(t *testing.T) {
	router := testRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/compliance", ComplianceRequest{
		GradeGroup: "elementary",
		Totals: ComplianceTotals{
			MeatMAOz:     decimal.RequireFromString("12.5"),
			GrainOzEq:    decimal.NewFromInt(6),
			FruitCups:    decimal.RequireFromString("2.5"),
			VegCupsTotal: decimal.RequireFromString("3.75"),
			VegSubgroups: map[string]decimal.Decimal{
				"dark_green": decimal.RequireFromString("0.5"),
				"red_orange": decimal.RequireFromString("0.75"),
				"legumes":    decimal.RequireFromString("0.5"),
				"starchy":    decimal.RequireFromString("0.5"),
				"other":      decimal.RequireFromString("1.5"),
			},
		},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var report struct {
		IsCompliant bool `json:"IsCompliant"`
		Findings    []struct {
			Component string          `json:"Component"`
			Deficit   decimal.Decimal `json:"Deficit"`
		} `json:"Findings"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &report))
	assert.False(t, report.IsCompliant)
	require.Len(t, report.Findings, 9)

	t.Run("invalid grade group", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/compliance", ComplianceRequest{
			GradeGroup: "college",
			Totals:     ComplianceTotals{},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("invalid subgroup name", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/compliance", ComplianceRequest{
			GradeGroup: "elementary",
			Totals: ComplianceTotals{
				VegSubgroups: map[string]decimal.Decimal{"purple": decimal.NewFromInt(1)},
			},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestBudget(t *testing.T) {
	router := testRouter(t)

	rate := decimal.RequireFromString("4.05")
	recorder := doJSON(t, router, http.MethodPost, "/api/budget", BudgetRequest{
		TotalCommoditySpend: decimal.NewFromInt(2520000),
		ReimbursementRate:   &rate,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Snapshot struct {
			FoodCostPerMeal decimal.Decimal `json:"FoodCostPerMeal"`
			Headroom        decimal.Decimal `json:"Headroom"`
		} `json:"snapshot"`
		BenchmarkStatus string `json:"benchmark_status"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Snapshot.FoodCostPerMeal.Equal(decimal.RequireFromString("0.7")))
	assert.True(t, response.Snapshot.Headroom.Equal(decimal.RequireFromString("1.35")))
	assert.Equal(t, "below", response.BenchmarkStatus)

	t.Run("zero meals override", func(t *testing.T) {
		zeroMeals := int64(0)
		recorder := doJSON(t, router, http.MethodPost, "/api/budget", BudgetRequest{
			TotalCommoditySpend: decimal.NewFromInt(1000),
			AnnualMeals:         &zeroMeals,
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			BenchmarkStatus string `json:"benchmark_status"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "unknown", response.BenchmarkStatus)
	})
}
