package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemStatus is the lifecycle status shared by all line item kinds.
type ItemStatus string

const (
	StatusPlanned   ItemStatus = "planned"
	StatusCommitted ItemStatus = "committed"
	StatusSpent     ItemStatus = "spent"
	StatusCancelled ItemStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s ItemStatus) Valid() bool {
	return s == StatusPlanned || s == StatusCommitted || s == StatusSpent || s == StatusCancelled
}

// deleteOwned deletes all records matching the query one by one so that
// their delete hooks run and remove their own children in turn.
func deleteOwned[T any](tx *gorm.DB, query string, id uuid.UUID) error {
	var records []T
	if err := tx.Where(query, id).Find(&records).Error; err != nil {
		return err
	}

	for i := range records {
		if err := tx.Delete(&records[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Owner type discriminators for MoneyAllocation. Each owner association
// declares the same value via polymorphicValue, so allocations written
// through the association and allocations written directly agree.
const (
	OwnerFundingItem     = "FundingItem"
	OwnerSpendingItem    = "SpendingItem"
	OwnerProcurementItem = "ProcurementItem"
	OwnerTrainingItem    = "TrainingItem"
	OwnerTravelItem      = "TravelItem"
)
