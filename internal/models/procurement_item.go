package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcurementItem represents a purchase that goes through a procurement
// process, with quotes from vendors and a status-change log.
type ProcurementItem struct {
	DefaultModel
	FiscalYearID uuid.UUID  `json:"fiscalYearId" gorm:"uniqueIndex:procurement_item_fy_name" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear   FiscalYear `json:"-"`
	CategoryID   *uuid.UUID `json:"categoryId"` // Optional category
	Category     *Category  `json:"-"`
	Name         string     `json:"name" gorm:"uniqueIndex:procurement_item_fy_name" example:"Forklift Replacement"`
	Description  string     `json:"description" default:""`
	Status       ItemStatus `json:"status" example:"planned" default:"planned"`
	Vendor       string     `json:"vendor" example:"ACME Industrial" default:""` // Selected vendor, if any

	Allocations []MoneyAllocation  `json:"allocations" gorm:"polymorphic:Owner;polymorphicValue:ProcurementItem"`
	Events      []ProcurementEvent `json:"events"`
	Quotes      []ProcurementQuote `json:"quotes"`
}

// BeforeDelete removes the allocations, events and quotes owned by the
// item. Events and quotes are deleted one by one so their file hooks run.
func (i *ProcurementItem) BeforeDelete(tx *gorm.DB) error {
	if err := deleteAllocations(tx, i.ID, OwnerProcurementItem); err != nil {
		return err
	}

	if err := deleteOwned[ProcurementEvent](tx, "procurement_item_id = ?", i.ID); err != nil {
		return err
	}

	return deleteOwned[ProcurementQuote](tx, "procurement_item_id = ?", i.ID)
}
