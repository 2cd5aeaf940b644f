package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SpendingInvoice is an invoice received for a spending item.
type SpendingInvoice struct {
	DefaultModel
	SpendingItemID uuid.UUID       `json:"spendingItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	SpendingItem   SpendingItem    `json:"-"`
	Reference      string          `json:"reference" example:"INV-2025-1138"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1312.50"`
	InvoiceDate    time.Time       `json:"invoiceDate" example:"2025-06-30T00:00:00.000000Z"`

	Files []SpendingInvoiceFile `json:"files"`
}

// BeforeDelete removes the files attached to the invoice.
func (i *SpendingInvoice) BeforeDelete(tx *gorm.DB) error {
	return tx.Where("spending_invoice_id = ?", i.ID).Delete(&SpendingInvoiceFile{}).Error
}
