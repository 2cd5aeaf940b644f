package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FundingItem represents money coming into a fiscal year, e.g. a grant.
type FundingItem struct {
	DefaultModel
	FiscalYearID uuid.UUID  `json:"fiscalYearId" gorm:"uniqueIndex:funding_item_fy_name" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear   FiscalYear `json:"-"`
	CategoryID   *uuid.UUID `json:"categoryId" example:"e5b9f9b1-7b33-42cf-939c-9f01f24c40b4"` // Optional category
	Category     *Category  `json:"-"`
	Name         string     `json:"name" gorm:"uniqueIndex:funding_item_fy_name" example:"Infrastructure Grant"`
	Description  string     `json:"description" example:"Annual infrastructure top-up" default:""`
	Status       ItemStatus `json:"status" example:"planned" default:"planned"`

	Allocations []MoneyAllocation `json:"allocations" gorm:"polymorphic:Owner;polymorphicValue:FundingItem"`
}

// BeforeDelete removes the allocations owned by the item.
func (i *FundingItem) BeforeDelete(tx *gorm.DB) error {
	return deleteAllocations(tx, i.ID, OwnerFundingItem)
}
