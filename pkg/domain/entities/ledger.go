package entities

import "github.com/shopspring/decimal"

// EntitlementLedger is the running ledger of commodity spend against the
// district's annual entitlement and its fixed sub-allocations. Remaining
// may go negative: over-allocation is a reportable condition, never
// silently clamped.
type EntitlementLedger struct {
	EntitlementTotal decimal.Decimal
	// ReservedFraction is the share of the entitlement held for the
	// fresh-produce (DoD Fresh) program; the rest is brown box
	ReservedFraction   decimal.Decimal
	ReservedAllocation decimal.Decimal
	GeneralAllocation  decimal.Decimal

	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	UtilizationPct decimal.Decimal

	// Informational flags, returned alongside the numbers rather than
	// raised as errors: the planner needs all problems in one pass.
	UnderUtilized bool
	OverAllocated bool
	// BelowTarget fires when utilization is under the district's
	// season-end target (e.g. 98%)
	UtilizationTarget decimal.Decimal
	BelowTarget       bool

	// Commodity share audit: commodity cost per meal and the share of
	// total food cost covered by commodities, against the 15-20%
	// industry range. Defined only when annual meals is nonzero.
	CommodityCostPerMeal  decimal.Decimal
	CommodityShareOfFood  decimal.Decimal
	CommodityShareDefined bool
}
