// Package http is glue between HTTP requests and the pure planning
// services. Handlers translate JSON to engine calls and back; no
// planning logic lives here.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/application/services/allocation"
	"github.com/vsinha/commodityplan/pkg/application/services/budget"
	"github.com/vsinha/commodityplan/pkg/application/services/compliance"
	"github.com/vsinha/commodityplan/pkg/application/services/entitlement"
	"github.com/vsinha/commodityplan/pkg/domain/entities"
	"github.com/vsinha/commodityplan/pkg/domain/repositories"
	"github.com/vsinha/commodityplan/pkg/infrastructure/config"
)

// Handler wires the planning services to HTTP routes
type Handler struct {
	catalog     repositories.CatalogRepository
	profile     *config.DistrictProfile
	allocation  *allocation.Service
	entitlement *entitlement.Service
	compliance  *compliance.Service
	budget      *budget.Service
}

// NewHandler creates a new HTTP handler over a loaded catalog and profile
func NewHandler(catalog repositories.CatalogRepository, profile *config.DistrictProfile) *Handler {
	return &Handler{
		catalog:     catalog,
		profile:     profile,
		allocation:  allocation.NewService(),
		entitlement: entitlement.NewService(),
		compliance:  compliance.NewService(),
		budget:      budget.NewService(),
	}
}

// Health reports service liveness
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListCommodities returns catalog entries, optionally by category
// GET /api/commodities?category=beef
func (h *Handler) ListCommodities(c *gin.Context) {
	var (
		items []*entities.CommodityItem
		err   error
	)

	if categoryName := c.Query("category"); categoryName != "" {
		category, parseErr := entities.ParseCategory(categoryName)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
			return
		}
		items, err = h.catalog.GetCommoditiesByCategory(category)
	} else {
		items, err = h.catalog.GetAllCommodities()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"commodities": toCommodityResponses(items)})
}

// AllocateRequest is the JSON body for the allocation endpoint
type AllocateRequest struct {
	Lines []AllocateLine `json:"lines" binding:"required"`
}

// AllocateLine is one selection in an allocation request
type AllocateLine struct {
	CommodityID string `json:"commodity_id" binding:"required"`
	Cases       int64  `json:"cases"`
}

// Allocate computes category allocations for the requested lines
// POST /api/allocate
func (h *Handler) Allocate(c *gin.Context) {
	allocations, ok := h.computeAllocations(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocations": allocations})
}

// Ledger computes the entitlement ledger for the requested lines
// POST /api/ledger
func (h *Handler) Ledger(c *gin.Context) {
	allocations, ok := h.computeAllocations(c)
	if !ok {
		return
	}

	ledger, err := h.entitlement.ComputeLedger(allocations, entitlement.LedgerParams{
		EntitlementTotal:            h.profile.EntitlementTotal,
		ReservedFraction:            h.profile.ReservedFraction,
		UtilizationTarget:           h.profile.UtilizationTarget,
		AnnualMeals:                 h.profile.AnnualMeals,
		NonCommodityFoodCostPerMeal: h.profile.NonCommodityFoodCostPerMeal,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocations": allocations, "ledger": ledger})
}

// computeAllocations binds the shared request body and runs the
// allocation service, writing the error response on failure
func (h *Handler) computeAllocations(c *gin.Context) ([]entities.CategoryAllocation, bool) {
	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}

	lines := make([]entities.AllocationLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, entities.AllocationLine{
			CommodityID: entities.CommodityID(l.CommodityID),
			Cases:       l.Cases,
		})
	}

	allocations, err := h.allocation.ComputeAllocation(c.Request.Context(), lines, h.catalog)
	if err != nil {
		var unknown *entities.UnknownCommodityError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return nil, false
	}

	return allocations, true
}

// ComplianceRequest is the JSON body for the compliance endpoint
type ComplianceRequest struct {
	GradeGroup string           `json:"grade_group" binding:"required"`
	Totals     ComplianceTotals `json:"totals" binding:"required"`
}

// ComplianceTotals carries the weekly menu component amounts
type ComplianceTotals struct {
	MeatMAOz     decimal.Decimal            `json:"meat_ma_oz"`
	GrainOzEq    decimal.Decimal            `json:"grain_oz_eq"`
	FruitCups    decimal.Decimal            `json:"fruit_cups"`
	VegCupsTotal decimal.Decimal            `json:"veg_cups_total"`
	VegSubgroups map[string]decimal.Decimal `json:"veg_subgroups"`
}

// Compliance checks weekly menu totals against the meal pattern
// POST /api/compliance
func (h *Handler) Compliance(c *gin.Context) {
	var req ComplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	gradeGroup, err := entities.ParseGradeGroup(req.GradeGroup)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	totals := entities.WeeklyMenuTotals{
		MeatMAOz:        req.Totals.MeatMAOz,
		GrainOzEq:       req.Totals.GrainOzEq,
		FruitCups:       req.Totals.FruitCups,
		VegCupsTotal:    req.Totals.VegCupsTotal,
		VegSubgroupCups: make(map[entities.VegSubgroup]decimal.Decimal),
	}
	for name, amount := range req.Totals.VegSubgroups {
		subgroup, parseErr := entities.ParseVegSubgroup(name)
		if parseErr != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
			return
		}
		totals.VegSubgroupCups[subgroup] = amount
	}

	patterns, err := h.catalog.GetAllMealPatterns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report, err := h.compliance.CheckCompliance(totals, gradeGroup, patterns)
	if err != nil {
		var unknown *entities.UnknownGradeGroupError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// BudgetRequest is the JSON body for the budget endpoint. Omitted
// fields fall back to the district profile.
type BudgetRequest struct {
	TotalCommoditySpend decimal.Decimal  `json:"total_commodity_spend"`
	AnnualMeals         *int64           `json:"annual_meals"`
	ReimbursementRate   *decimal.Decimal `json:"reimbursement_rate"`
	LaborCostPerMeal    *decimal.Decimal `json:"labor_cost_per_meal"`
	OverheadCostPerMeal *decimal.Decimal `json:"overhead_cost_per_meal"`
}

// Budget computes a budget snapshot
// POST /api/budget
func (h *Handler) Budget(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	annualMeals := h.profile.AnnualMeals
	if req.AnnualMeals != nil {
		annualMeals = *req.AnnualMeals
	}

	rate := budget.WeightedReimbursementRate(h.profile.Rates, h.profile.Demographics, h.profile.Certifications)
	if req.ReimbursementRate != nil {
		rate = *req.ReimbursementRate
	}

	labor := h.profile.LaborCostPerMeal
	if req.LaborCostPerMeal != nil {
		labor = *req.LaborCostPerMeal
	}

	overhead := h.profile.OverheadCostPerMeal
	if req.OverheadCostPerMeal != nil {
		overhead = *req.OverheadCostPerMeal
	}

	snapshot, err := h.budget.ComputeBudgetSnapshot(budget.SnapshotInput{
		TotalCommoditySpend: req.TotalCommoditySpend,
		AnnualMeals:         annualMeals,
		ReimbursementRate:   rate,
		LaborCostPerMeal:    labor,
		OverheadCostPerMeal: overhead,
		Band:                h.profile.BenchmarkBand,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot":         snapshot,
		"benchmark_status": snapshot.BenchmarkStatus.String(),
	})
}

// CommodityResponse is the JSON shape for one catalog entry
type CommodityResponse struct {
	ID              string          `json:"commodity_id"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	CaseWeightLbs   decimal.Decimal `json:"case_weight_lbs"`
	CostPerLb       decimal.Decimal `json:"cost_per_lb"`
	ServingsPerCase int64           `json:"servings_per_case"`
	Recommended     bool            `json:"recommended"`
}

func toCommodityResponses(items []*entities.CommodityItem) []CommodityResponse {
	responses := make([]CommodityResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, CommodityResponse{
			ID:              string(item.ID),
			Description:     item.Description,
			Category:        item.Category.String(),
			CaseWeightLbs:   item.CaseWeightLbs,
			CostPerLb:       item.CostPerLb,
			ServingsPerCase: item.ServingsPerCase,
			Recommended:     item.Recommended,
		})
	}
	return responses
}
