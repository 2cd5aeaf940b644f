package models

import (
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// MoneyType is a named funding envelope within a fiscal year.
//
// Exactly one money type per fiscal year should be the default. This is not
// enforced by the database, the controllers unset the previous default when
// a new one is set.
type MoneyType struct {
	DefaultModel
	FiscalYearID uuid.UUID  `json:"fiscalYearId" gorm:"uniqueIndex:money_type_fy_code" example:"a3ee2da5-9c1d-42e1-9c94-dc145c7dbb1e"`
	FiscalYear   FiscalYear `json:"-"`
	Code         string     `json:"code" gorm:"uniqueIndex:money_type_fy_code" example:"AB"` // Short code, stored upper-case
	Name         string     `json:"name" example:"A-Base"`                                   // Display name
	IsDefault    bool       `json:"isDefault" default:"false"`                               // Is this the default money type for new allocations?
	DisplayOrder uint       `json:"displayOrder" example:"1"`                                // Position in listings, ascending
}

var upper = cases.Upper(language.English)

// NormalizeMoneyTypeCode folds a money type code to the stored upper-case
// form so that lookups by code are case-insensitive.
func NormalizeMoneyTypeCode(code string) string {
	return upper.String(code)
}

// BeforeSave normalizes the code.
func (m *MoneyType) BeforeSave(_ *gorm.DB) error {
	m.Code = NormalizeMoneyTypeCode(m.Code)
	return nil
}
