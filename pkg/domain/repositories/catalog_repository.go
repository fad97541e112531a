package repositories

import "github.com/vsinha/commodityplan/pkg/domain/entities"

// CatalogRepository provides read-only access to commodity and
// meal-pattern reference data. Implementations must be immutable after
// load so concurrent planning requests can share one instance.
type CatalogRepository interface {
	GetCommodity(id entities.CommodityID) (*entities.CommodityItem, error)
	GetAllCommodities() ([]*entities.CommodityItem, error)
	GetCommoditiesByCategory(category entities.Category) ([]*entities.CommodityItem, error)
	GetMealPattern(gradeGroup entities.GradeGroup) (*entities.MealPatternRequirement, error)
	GetAllMealPatterns() ([]*entities.MealPatternRequirement, error)
}
