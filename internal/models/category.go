package models

import (
	"github.com/google/uuid"
)

// FundingRestriction limits which kind of money may be allocated to line
// items in a category.
type FundingRestriction string

const (
	RestrictionCapital   FundingRestriction = "capital"
	RestrictionOperating FundingRestriction = "operating"
	RestrictionBoth      FundingRestriction = "both"
)

// Valid reports whether the restriction is one of the known values.
func (r FundingRestriction) Valid() bool {
	return r == RestrictionCapital || r == RestrictionOperating || r == RestrictionBoth
}

// Category is a classification bucket for line items within a fiscal year.
type Category struct {
	DefaultModel
	FiscalYearID       uuid.UUID          `json:"fiscalYearId" gorm:"uniqueIndex:category_fy_name" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear         FiscalYear         `json:"-"`
	Name               string             `json:"name" gorm:"uniqueIndex:category_fy_name" example:"Operations"`
	FundingRestriction FundingRestriction `json:"fundingRestriction" example:"both" default:"both"`
	IsDefault          bool               `json:"isDefault" default:"false"`
	DisplayOrder       uint               `json:"displayOrder" example:"1"`
}

// SpendingCategory is a classification bucket for spending items within a
// fiscal year. It is kept separate from Category since spending items are
// classified independently from the other line item kinds.
type SpendingCategory struct {
	DefaultModel
	FiscalYearID       uuid.UUID          `json:"fiscalYearId" gorm:"uniqueIndex:spending_category_fy_name" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear         FiscalYear         `json:"-"`
	Name               string             `json:"name" gorm:"uniqueIndex:spending_category_fy_name" example:"Contracted Services"`
	FundingRestriction FundingRestriction `json:"fundingRestriction" example:"operating" default:"both"`
	IsDefault          bool               `json:"isDefault" default:"false"`
	DisplayOrder       uint               `json:"displayOrder" example:"1"`
}
