package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCommodityItem_Validation(t *testing.T) {
	validItem, err := NewCommodityItem(
		"100158", "Beef, Fine Ground 85/15", Beef,
		decimal.NewFromInt(40), decimal.RequireFromString("3.25"), 320, true)
	if err != nil {
		t.Fatalf("Expected valid commodity creation to succeed: %v", err)
	}
	if validItem.ID != "100158" {
		t.Errorf("Expected commodity id 100158, got %s", validItem.ID)
	}
	if validItem.ServingsPerCase != 320 {
		t.Errorf("Expected 320 servings per case, got %d", validItem.ServingsPerCase)
	}

	// Test validation failures
	testCases := []struct {
		name        string
		id          CommodityID
		description string
		caseWeight  string
		costPerLb   string
		servings    int64
		expectError string
	}{
		{"empty id", "", "desc", "40", "3.25", 320, "commodity id cannot be empty"},
		{"empty description", "100158", "", "40", "3.25", 320, "description cannot be empty"},
		{"zero case weight", "100158", "desc", "0", "3.25", 320, "case weight must be positive, got 0"},
		{"negative case weight", "100158", "desc", "-40", "3.25", 320, "case weight must be positive, got -40"},
		{"negative cost", "100158", "desc", "40", "-3.25", 320, "cost per pound cannot be negative, got -3.25"},
		{"zero servings", "100158", "desc", "40", "3.25", 0, "servings per case must be positive, got 0"},
		{"negative servings", "100158", "desc", "40", "3.25", -10, "servings per case must be positive, got -10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCommodityItem(
				tc.id, tc.description, Beef,
				decimal.RequireFromString(tc.caseWeight),
				decimal.RequireFromString(tc.costPerLb),
				tc.servings, false)
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tc.expectError)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestDeriveServingsPerCase(t *testing.T) {
	testCases := []struct {
		name        string
		caseWeight  string
		yieldFactor string
		servingSize string
		expected    int64
	}{
		// 40 lb x 16 oz/lb x 0.74 yield / 2 oz = 236.8 -> 237
		{"beef patties", "40", "0.74", "2.0", 237},
		// 30 lb x 16 oz/lb x 0.87 yield / 3 oz = 139.2 -> 139
		{"frozen spinach", "30", "0.87", "3.0", 139},
		// exact division, no rounding
		{"full yield", "40", "1.0", "2.0", 320},
		// 1 lb x 16 oz / 32 oz = 0.5 -> rounds up to 1
		{"half rounds up", "1", "1.0", "32", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			servings, err := DeriveServingsPerCase(
				decimal.RequireFromString(tc.caseWeight),
				decimal.RequireFromString(tc.yieldFactor),
				decimal.RequireFromString(tc.servingSize))
			if err != nil {
				t.Fatalf("Expected derivation to succeed: %v", err)
			}
			if servings != tc.expected {
				t.Errorf("Expected %d servings, got %d", tc.expected, servings)
			}
		})
	}

	errorCases := []struct {
		name        string
		caseWeight  string
		yieldFactor string
		servingSize string
		expectError string
	}{
		{"zero case weight", "0", "0.74", "2.0", "case weight must be positive, got 0"},
		{"zero yield", "40", "0", "2.0", "yield factor must be positive, got 0"},
		{"negative yield", "40", "-0.5", "2.0", "yield factor must be positive, got -0.5"},
		{"zero serving size", "40", "0.74", "0", "serving size must be positive, got 0"},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DeriveServingsPerCase(
				decimal.RequireFromString(tc.caseWeight),
				decimal.RequireFromString(tc.yieldFactor),
				decimal.RequireFromString(tc.servingSize))
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tc.expectError)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestNewCommodityItemFromYield(t *testing.T) {
	item, err := NewCommodityItemFromYield(
		"110349", "Beef Patties 85/15", Beef,
		decimal.NewFromInt(40), decimal.RequireFromString("3.42"),
		decimal.RequireFromString("0.74"), decimal.RequireFromString("2.0"), true)
	if err != nil {
		t.Fatalf("Expected creation from yield to succeed: %v", err)
	}
	if item.ServingsPerCase != 237 {
		t.Errorf("Expected 237 derived servings, got %d", item.ServingsPerCase)
	}
}

func TestParseCategory(t *testing.T) {
	for _, category := range AllCategories() {
		parsed, err := ParseCategory(category.String())
		if err != nil {
			t.Fatalf("Expected %s to round-trip: %v", category, err)
		}
		if parsed != category {
			t.Errorf("Expected %s, got %s", category, parsed)
		}
	}

	if _, err := ParseCategory("candy"); err == nil {
		t.Error("Expected error for invalid category")
	}
}
