package memory

import (
	"fmt"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
	"github.com/vsinha/commodityplan/pkg/domain/repositories"
)

// CatalogRepository provides in-memory commodity and meal-pattern
// storage. Load everything at startup, then treat it as read-only: the
// planning services share one instance across concurrent requests.
type CatalogRepository struct {
	commodities   []entities.CommodityItem
	commodityIdx  map[entities.CommodityID]int
	mealPatterns  []entities.MealPatternRequirement
	gradeGroupIdx map[entities.GradeGroup]int
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository(expectedCommodities int) *CatalogRepository {
	return &CatalogRepository{
		commodities:   make([]entities.CommodityItem, 0, expectedCommodities),
		commodityIdx:  make(map[entities.CommodityID]int, expectedCommodities),
		gradeGroupIdx: make(map[entities.GradeGroup]int, 4),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadCommodities loads commodities into the repository
func (r *CatalogRepository) LoadCommodities(items []*entities.CommodityItem) error {
	for _, item := range items {
		if _, exists := r.commodityIdx[item.ID]; exists {
			return fmt.Errorf("duplicate commodity id: %s", item.ID)
		}
		r.commodityIdx[item.ID] = len(r.commodities)
		r.commodities = append(r.commodities, *item)
	}
	return nil
}

// LoadMealPatterns loads meal-pattern requirements into the repository
func (r *CatalogRepository) LoadMealPatterns(patterns []*entities.MealPatternRequirement) error {
	for _, pattern := range patterns {
		if _, exists := r.gradeGroupIdx[pattern.GradeGroup]; exists {
			return fmt.Errorf("duplicate meal pattern for grade group: %s", pattern.GradeGroup)
		}
		r.gradeGroupIdx[pattern.GradeGroup] = len(r.mealPatterns)
		r.mealPatterns = append(r.mealPatterns, *pattern)
	}
	return nil
}

// GetCommodity returns the catalog entry for a commodity id
func (r *CatalogRepository) GetCommodity(id entities.CommodityID) (*entities.CommodityItem, error) {
	index, exists := r.commodityIdx[id]
	if !exists {
		return nil, &entities.UnknownCommodityError{ID: id}
	}
	return &r.commodities[index], nil
}

// GetAllCommodities returns all commodities in load order
func (r *CatalogRepository) GetAllCommodities() ([]*entities.CommodityItem, error) {
	items := make([]*entities.CommodityItem, 0, len(r.commodities))
	for i := range r.commodities {
		items = append(items, &r.commodities[i])
	}
	return items, nil
}

// GetCommoditiesByCategory returns the commodities in one category
func (r *CatalogRepository) GetCommoditiesByCategory(category entities.Category) ([]*entities.CommodityItem, error) {
	var items []*entities.CommodityItem
	for i := range r.commodities {
		if r.commodities[i].Category == category {
			items = append(items, &r.commodities[i])
		}
	}
	return items, nil
}

// GetMealPattern returns the requirement record for a grade group
func (r *CatalogRepository) GetMealPattern(gradeGroup entities.GradeGroup) (*entities.MealPatternRequirement, error) {
	index, exists := r.gradeGroupIdx[gradeGroup]
	if !exists {
		return nil, &entities.UnknownGradeGroupError{GradeGroup: gradeGroup}
	}
	return &r.mealPatterns[index], nil
}

// GetAllMealPatterns returns all meal patterns in load order
func (r *CatalogRepository) GetAllMealPatterns() ([]*entities.MealPatternRequirement, error) {
	patterns := make([]*entities.MealPatternRequirement, 0, len(r.mealPatterns))
	for i := range r.mealPatterns {
		patterns = append(patterns, &r.mealPatterns[i])
	}
	return patterns, nil
}
