package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FiscalYear is the root of a budget aggregate. Money types, categories and
// all line items belong to exactly one fiscal year.
type FiscalYear struct {
	DefaultModel
	Name                   string               `json:"name" gorm:"uniqueIndex:fiscal_year_rc_name" example:"FY 2025-2026"`
	ResponsibilityCentreID uuid.UUID            `json:"responsibilityCentreId" gorm:"uniqueIndex:fiscal_year_rc_name" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	ResponsibilityCentre   ResponsibilityCentre `json:"-"`

	// Display settings. These are copied verbatim when a fiscal year is cloned.
	ShowSearch  bool `json:"showSearch" default:"false"`  // Show the search bar?
	ShowFilters bool `json:"showFilters" default:"false"` // Show the filter panel?

	// Bounds for the "on target" spending indicator, in percent.
	OnTargetLowerPct decimal.Decimal `json:"onTargetLowerPct" gorm:"type:DECIMAL(20,8)" example:"95"`
	OnTargetUpperPct decimal.Decimal `json:"onTargetUpperPct" gorm:"type:DECIMAL(20,8)" example:"105"`
}

// BeforeDelete removes everything belonging to the fiscal year. Line items
// are deleted one by one so their own hooks can clean up allocations,
// events, invoices, quotes and files.
func (f *FiscalYear) BeforeDelete(tx *gorm.DB) error {
	if err := deleteOwned[FundingItem](tx, "fiscal_year_id = ?", f.ID); err != nil {
		return err
	}

	if err := deleteOwned[SpendingItem](tx, "fiscal_year_id = ?", f.ID); err != nil {
		return err
	}

	if err := deleteOwned[ProcurementItem](tx, "fiscal_year_id = ?", f.ID); err != nil {
		return err
	}

	if err := deleteOwned[TrainingItem](tx, "fiscal_year_id = ?", f.ID); err != nil {
		return err
	}

	if err := deleteOwned[TravelItem](tx, "fiscal_year_id = ?", f.ID); err != nil {
		return err
	}

	for _, model := range []any{&MoneyType{}, &Category{}, &SpendingCategory{}} {
		if err := tx.Where("fiscal_year_id = ?", f.ID).Delete(model).Error; err != nil {
			return err
		}
	}

	return nil
}
