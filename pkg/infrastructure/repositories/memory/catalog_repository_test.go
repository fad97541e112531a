package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/commodityplan/pkg/domain/entities"
)

func mkCommodity(t *testing.T, id entities.CommodityID, category entities.Category) *entities.CommodityItem {
	t.Helper()
	item, err := entities.NewCommodityItem(
		id, "Test Commodity "+string(id), category,
		decimal.NewFromInt(40), decimal.RequireFromString("3.25"), 320, true)
	if err != nil {
		t.Fatalf("Failed to create commodity %s: %v", id, err)
	}
	return item
}

func TestCatalogRepository_Commodities(t *testing.T) {
	repo := NewCatalogRepository(3)

	err := repo.LoadCommodities([]*entities.CommodityItem{
		mkCommodity(t, "100158", entities.Beef),
		mkCommodity(t, "100117", entities.Poultry),
		mkCommodity(t, "100307", entities.Vegetables),
	})
	if err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}

	item, err := repo.GetCommodity("100117")
	if err != nil {
		t.Fatalf("Expected lookup to succeed: %v", err)
	}
	if item.Category != entities.Poultry {
		t.Errorf("Expected poultry, got %s", item.Category)
	}

	all, err := repo.GetAllCommodities()
	if err != nil {
		t.Fatalf("Expected list to succeed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 commodities, got %d", len(all))
	}
	// Load order is preserved
	if all[0].ID != "100158" || all[2].ID != "100307" {
		t.Error("Expected commodities in load order")
	}

	beef, err := repo.GetCommoditiesByCategory(entities.Beef)
	if err != nil {
		t.Fatalf("Expected category lookup to succeed: %v", err)
	}
	if len(beef) != 1 || beef[0].ID != "100158" {
		t.Errorf("Expected one beef commodity 100158, got %d", len(beef))
	}

	empty, err := repo.GetCommoditiesByCategory(entities.Dairy)
	if err != nil {
		t.Fatalf("Expected category lookup to succeed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no dairy commodities, got %d", len(empty))
	}
}

func TestCatalogRepository_UnknownCommodity(t *testing.T) {
	repo := NewCatalogRepository(0)

	_, err := repo.GetCommodity("999999")
	if err == nil {
		t.Fatal("Expected error for unknown commodity, got nil")
	}

	var unknown *entities.UnknownCommodityError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownCommodityError, got %T: %v", err, err)
	}
	if unknown.ID != "999999" {
		t.Errorf("Expected id 999999 in error, got %s", unknown.ID)
	}
}

func TestCatalogRepository_DuplicateCommodity(t *testing.T) {
	repo := NewCatalogRepository(2)

	err := repo.LoadCommodities([]*entities.CommodityItem{
		mkCommodity(t, "100158", entities.Beef),
		mkCommodity(t, "100158", entities.Beef),
	})
	if err == nil {
		t.Fatal("Expected error for duplicate commodity id, got nil")
	}

	expected := "duplicate commodity id: 100158"
	if err.Error() != expected {
		t.Errorf("Expected error %q, got %q", expected, err.Error())
	}
}

func TestCatalogRepository_MealPatterns(t *testing.T) {
	repo := NewCatalogRepository(0)

	if err := repo.LoadMealPatterns(entities.DefaultMealPatterns()); err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}

	pattern, err := repo.GetMealPattern(entities.High)
	if err != nil {
		t.Fatalf("Expected lookup to succeed: %v", err)
	}
	if !pattern.GrainOzEq.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected high school grain 10 oz-eq, got %s", pattern.GrainOzEq)
	}

	all, err := repo.GetAllMealPatterns()
	if err != nil {
		t.Fatalf("Expected list to succeed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 patterns, got %d", len(all))
	}
}

func TestCatalogRepository_DuplicateMealPattern(t *testing.T) {
	repo := NewCatalogRepository(0)
	patterns := entities.DefaultMealPatterns()

	err := repo.LoadMealPatterns([]*entities.MealPatternRequirement{patterns[0], patterns[0]})
	if err == nil {
		t.Fatal("Expected error for duplicate meal pattern, got nil")
	}

	expected := "duplicate meal pattern for grade group: pre_k"
	if err.Error() != expected {
		t.Errorf("Expected error %q, got %q", expected, err.Error())
	}
}

func TestCatalogRepository_UnknownGradeGroup(t *testing.T) {
	repo := NewCatalogRepository(0)

	_, err := repo.GetMealPattern(entities.Middle)
	if err == nil {
		t.Fatal("Expected error for unknown grade group, got nil")
	}

	var unknown *entities.UnknownGradeGroupError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownGradeGroupError, got %T: %v", err, err)
	}
}
