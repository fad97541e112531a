package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBenchmarkBand_Validation(t *testing.T) {
	band, err := NewBenchmarkBand(decimal.NewFromInt(40), decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("Expected valid band creation to succeed: %v", err)
	}
	if !band.MinPct.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Expected minimum 40, got %s", band.MinPct)
	}

	if _, err := NewBenchmarkBand(decimal.NewFromInt(-1), decimal.NewFromInt(50)); err == nil {
		t.Error("Expected error for negative minimum")
	}
	if _, err := NewBenchmarkBand(decimal.NewFromInt(50), decimal.NewFromInt(40)); err == nil {
		t.Error("Expected error for inverted band")
	}
}

func TestBenchmarkBand_Classify(t *testing.T) {
	band := DefaultBenchmarkBand()

	testCases := []struct {
		name     string
		pct      string
		expected BenchmarkStatus
	}{
		{"well below", "17.28", BenchmarkBelow},
		{"just below", "39.99", BenchmarkBelow},
		{"at minimum", "40", BenchmarkWithin},
		{"mid band", "45", BenchmarkWithin},
		{"at maximum", "50", BenchmarkWithin},
		{"just above", "50.01", BenchmarkAbove},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status := band.Classify(decimal.RequireFromString(tc.pct))
			if status != tc.expected {
				t.Errorf("Expected %s for %s%%, got %s", tc.expected, tc.pct, status)
			}
		})
	}
}

func TestDemographics_Validation(t *testing.T) {
	valid, err := NewDemographics(
		decimal.RequireFromString("0.62"),
		decimal.RequireFromString("0.07"),
		decimal.RequireFromString("0.31"))
	if err != nil {
		t.Fatalf("Expected valid demographics to succeed: %v", err)
	}
	if !valid.FreePct.Equal(decimal.RequireFromString("0.62")) {
		t.Errorf("Expected free fraction 0.62, got %s", valid.FreePct)
	}

	testCases := []struct {
		name                string
		free, reduced, paid string
		expectError         string
	}{
		{"negative fraction", "-0.1", "0.6", "0.5", "free fraction cannot be negative, got -0.1"},
		{"sum below one", "0.5", "0.1", "0.1", "demographic fractions must sum to 1, got 0.7"},
		{"sum above one", "0.7", "0.3", "0.2", "demographic fractions must sum to 1, got 1.2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDemographics(
				decimal.RequireFromString(tc.free),
				decimal.RequireFromString(tc.reduced),
				decimal.RequireFromString(tc.paid))
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tc.expectError)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error %q, got %q", tc.expectError, err.Error())
			}
		})
	}

	// Rounding noise within tolerance is accepted
	if _, err := NewDemographics(
		decimal.RequireFromString("0.333333"),
		decimal.RequireFromString("0.333333"),
		decimal.RequireFromString("0.333334"),
	); err != nil {
		t.Errorf("Expected fractions within tolerance to pass: %v", err)
	}
}
