package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpendingItem represents planned or actual spending in a fiscal year.
type SpendingItem struct {
	DefaultModel
	FiscalYearID       uuid.UUID         `json:"fiscalYearId" gorm:"uniqueIndex:spending_item_fy_name" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear         FiscalYear        `json:"-"`
	CategoryID         *uuid.UUID        `json:"categoryId"` // Optional category
	Category           *Category         `json:"-"`
	SpendingCategoryID *uuid.UUID        `json:"spendingCategoryId"` // Optional spending classification
	SpendingCategory   *SpendingCategory `json:"-"`
	Name               string            `json:"name" gorm:"uniqueIndex:spending_item_fy_name" example:"Workshop Supplies"`
	Description        string            `json:"description" default:""`
	Status             ItemStatus        `json:"status" example:"committed" default:"planned"`

	Allocations []MoneyAllocation `json:"allocations" gorm:"polymorphic:Owner;polymorphicValue:SpendingItem"`
	Events      []SpendingEvent   `json:"events"`
	Invoices    []SpendingInvoice `json:"invoices"`
}

// BeforeDelete removes the allocations, events and invoices owned by the
// item. Invoices are deleted one by one so their file hooks run.
func (i *SpendingItem) BeforeDelete(tx *gorm.DB) error {
	if err := deleteAllocations(tx, i.ID, OwnerSpendingItem); err != nil {
		return err
	}

	if err := tx.Where("spending_item_id = ?", i.ID).Delete(&SpendingEvent{}).Error; err != nil {
		return err
	}

	return deleteOwned[SpendingInvoice](tx, "spending_item_id = ?", i.ID)
}
