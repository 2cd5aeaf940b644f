package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrainingItem represents planned training spending in a fiscal year.
type TrainingItem struct {
	DefaultModel
	FiscalYearID uuid.UUID  `json:"fiscalYearId" gorm:"uniqueIndex:training_item_fy_name" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear   FiscalYear `json:"-"`
	CategoryID   *uuid.UUID `json:"categoryId"` // Optional category
	Category     *Category  `json:"-"`
	Name         string     `json:"name" gorm:"uniqueIndex:training_item_fy_name" example:"Crane Operator Certification"`
	Description  string     `json:"description" default:""`
	Status       ItemStatus `json:"status" default:"planned"`
	Provider     string     `json:"provider" example:"Northern Safety Institute" default:""`

	Allocations []MoneyAllocation `json:"allocations" gorm:"polymorphic:Owner;polymorphicValue:TrainingItem"`
}

// BeforeDelete removes the allocations owned by the item.
func (i *TrainingItem) BeforeDelete(tx *gorm.DB) error {
	return deleteAllocations(tx, i.ID, OwnerTrainingItem)
}
