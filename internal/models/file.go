package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileMeta is the metadata shared by all file attachment kinds.
type FileMeta struct {
	Name        string `json:"name" example:"quote-acme.pdf"`
	ContentType string `json:"contentType" example:"application/pdf"`
	Size        int64  `json:"size" example:"52133"` // Declared size, must equal the payload length
	Description string `json:"description" default:""`
}

// validateSize fills in the size from the payload when it is unset and
// rejects a declared size that does not match the payload.
func (f *FileMeta) validateSize(content []byte) error {
	if f.Size == 0 {
		f.Size = int64(len(content))
		return nil
	}

	if f.Size != int64(len(content)) {
		return ErrFileSizeMismatch
	}

	return nil
}

// ProcurementQuoteFile is a binary attachment on a procurement quote.
type ProcurementQuoteFile struct {
	DefaultModel
	FileMeta
	ProcurementQuoteID uuid.UUID        `json:"procurementQuoteId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	ProcurementQuote   ProcurementQuote `json:"-"`
	Content            []byte           `json:"-" gorm:"type:BLOB"`
}

func (f *ProcurementQuoteFile) BeforeSave(_ *gorm.DB) error {
	return f.validateSize(f.Content)
}

// ProcurementEventFile is a binary attachment on a procurement event.
type ProcurementEventFile struct {
	DefaultModel
	FileMeta
	ProcurementEventID uuid.UUID        `json:"procurementEventId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	ProcurementEvent   ProcurementEvent `json:"-"`
	Content            []byte           `json:"-" gorm:"type:BLOB"`
}

func (f *ProcurementEventFile) BeforeSave(_ *gorm.DB) error {
	return f.validateSize(f.Content)
}

// SpendingInvoiceFile is a binary attachment on a spending invoice.
type SpendingInvoiceFile struct {
	DefaultModel
	FileMeta
	SpendingInvoiceID uuid.UUID       `json:"spendingInvoiceId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	SpendingInvoice   SpendingInvoice `json:"-"`
	Content           []byte          `json:"-" gorm:"type:BLOB"`
}

func (f *SpendingInvoiceFile) BeforeSave(_ *gorm.DB) error {
	return f.validateSize(f.Content)
}
