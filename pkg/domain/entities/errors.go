package entities

import "fmt"

// CatalogLoadError reports malformed or missing reference data. It is
// fatal: the engine refuses to start rather than substitute defaults,
// since silent defaults would corrupt downstream financial and
// compliance numbers.
type CatalogLoadError struct {
	Source string
	Err    error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("catalog load failed for %s: %v", e.Source, e.Err)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

// UnknownCommodityError reports an allocation line referencing a
// commodity with no catalog entry. It fails the whole computation: a
// partial allocation total would be silently misleading in a budget
// context.
type UnknownCommodityError struct {
	ID CommodityID
}

func (e *UnknownCommodityError) Error() string {
	return fmt.Sprintf("unknown commodity: %s", e.ID)
}

// UnknownGradeGroupError reports a compliance check against a grade
// group with no meal-pattern record
type UnknownGradeGroupError struct {
	GradeGroup GradeGroup
}

func (e *UnknownGradeGroupError) Error() string {
	return fmt.Sprintf("no meal pattern for grade group: %s", e.GradeGroup)
}
