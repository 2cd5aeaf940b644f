package v1

import (
	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllocationEditable contains the fields of a money allocation that can be
// set by API consumers. Allocations are always managed through the line
// item owning them.
type AllocationEditable struct {
	MoneyTypeID     ez_uuid.UUID    `json:"moneyTypeId" example:"5c55b9e5-4afc-4677-a437-11a2aad2029b" binding:"required"`
	CapitalAmount   decimal.Decimal `json:"capitalAmount" example:"10000"`
	OperatingAmount decimal.Decimal `json:"operatingAmount" example:"5000"`
}

func allocationModels(editables []AllocationEditable) []models.MoneyAllocation {
	allocations := make([]models.MoneyAllocation, 0, len(editables))
	for _, editable := range editables {
		allocations = append(allocations, models.MoneyAllocation{
			MoneyTypeID:     editable.MoneyTypeID.UUID,
			CapitalAmount:   editable.CapitalAmount,
			OperatingAmount: editable.OperatingAmount,
		})
	}

	return allocations
}

// LineItemQueryFilter contains the supported query string parameters for
// all line item list endpoints.
type LineItemQueryFilter struct {
	FiscalYear ez_uuid.UUID `form:"fiscalYear"`
	Name       string       `form:"name"`
}

func (filter LineItemQueryFilter) apply(query *gorm.DB) *gorm.DB {
	if filter.FiscalYear != ez_uuid.Nil {
		query = query.Where("fiscal_year_id = ?", filter.FiscalYear.UUID)
	}

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	return query.Order("name ASC")
}

// replaceAllocations swaps all money allocations of a line item for the
// ones sent in an update request.
func replaceAllocations(tx *gorm.DB, ownerID uuid.UUID, ownerType string, editables []AllocationEditable) error {
	err := tx.Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).Delete(&models.MoneyAllocation{}).Error
	if err != nil {
		return err
	}

	for _, allocation := range allocationModels(editables) {
		allocation.OwnerID = ownerID
		allocation.OwnerType = ownerType

		if err := tx.Create(&allocation).Error; err != nil {
			return err
		}
	}

	return nil
}

// withoutAllocations strips the association field from the field list used
// for gorm updates since it is handled by replaceAllocations.
func withoutAllocations(fields []any) []any {
	kept := make([]any, 0, len(fields))
	for _, field := range fields {
		if field == "Allocations" {
			continue
		}
		kept = append(kept, field)
	}

	return kept
}

// fileMetaQuery selects everything except the blob content so that listing
// files stays cheap.
func fileMetaQuery(db *gorm.DB) *gorm.DB {
	return db.Omit("content")
}
