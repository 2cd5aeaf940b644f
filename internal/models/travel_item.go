package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TravelItem represents planned travel spending in a fiscal year.
type TravelItem struct {
	DefaultModel
	FiscalYearID uuid.UUID  `json:"fiscalYearId" gorm:"uniqueIndex:travel_item_fy_name" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear   FiscalYear `json:"-"`
	CategoryID   *uuid.UUID `json:"categoryId"` // Optional category
	Category     *Category  `json:"-"`
	Name         string     `json:"name" gorm:"uniqueIndex:travel_item_fy_name" example:"Regional Conference"`
	Description  string     `json:"description" default:""`
	Status       ItemStatus `json:"status" default:"planned"`
	Destination  string     `json:"destination" example:"Halifax" default:""`

	Allocations []MoneyAllocation `json:"allocations" gorm:"polymorphic:Owner;polymorphicValue:TravelItem"`
}

// BeforeDelete removes the allocations owned by the item.
func (i *TravelItem) BeforeDelete(tx *gorm.DB) error {
	return deleteAllocations(tx, i.ID, OwnerTravelItem)
}
