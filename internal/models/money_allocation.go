package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MoneyAllocation assigns money from a money type to a line item. The owner
// is any of the line item kinds; OwnerType carries the owner kind's
// discriminator (one of the OwnerXxx constants).
//
// Both amounts are non-negative and at least one of them must be positive
// for the allocation to be meaningful.
type MoneyAllocation struct {
	DefaultModel
	OwnerID         uuid.UUID       `json:"ownerId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	OwnerType       string          `json:"ownerType" example:"FundingItem"`
	MoneyTypeID     uuid.UUID       `json:"moneyTypeId" example:"f33bf729-49fb-4a61-bb99-cbdbe0dff81c"`
	MoneyType       MoneyType       `json:"-"`
	CapitalAmount   decimal.Decimal `json:"capitalAmount" gorm:"type:DECIMAL(20,8)" example:"10000"`
	OperatingAmount decimal.Decimal `json:"operatingAmount" gorm:"type:DECIMAL(20,8)" example:"5000"`
}

// deleteAllocations removes all allocations owned by a line item.
func deleteAllocations(tx *gorm.DB, ownerID uuid.UUID, ownerType string) error {
	return tx.Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).Delete(&MoneyAllocation{}).Error
}

// BeforeSave validates the amounts.
func (a *MoneyAllocation) BeforeSave(_ *gorm.DB) error {
	if a.CapitalAmount.IsNegative() || a.OperatingAmount.IsNegative() {
		return ErrAllocationAmountNegative
	}

	if a.CapitalAmount.IsZero() && a.OperatingAmount.IsZero() {
		return ErrAllocationAmountZero
	}

	return nil
}
