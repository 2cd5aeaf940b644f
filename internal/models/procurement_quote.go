package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProcurementQuote is a vendor quote for a procurement item.
type ProcurementQuote struct {
	DefaultModel
	ProcurementItemID uuid.UUID       `json:"procurementItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	ProcurementItem   ProcurementItem `json:"-"`
	Vendor            string          `json:"vendor" example:"ACME Industrial"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"48000"`

	Files []ProcurementQuoteFile `json:"files"`
}

// BeforeDelete removes the files attached to the quote.
func (q *ProcurementQuote) BeforeDelete(tx *gorm.DB) error {
	return tx.Where("procurement_quote_id = ?", q.ID).Delete(&ProcurementQuoteFile{}).Error
}
