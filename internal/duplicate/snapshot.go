package duplicate

import (
	"time"

	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/models"
	"github.com/shopspring/decimal"
)

// FormatVersion is the snapshot document version written by Export.
const FormatVersion = 1

// Snapshot is a portable, self-contained representation of a fiscal year's
// line items. File payloads are inlined base64, so a snapshot can be moved
// between database instances without external blob references.
//
// Money types and categories are referenced by code and name rather than by
// identifier: an import resolves them against the target fiscal year.
type Snapshot struct {
	Metadata         Metadata                `json:"metadata"`
	FundingItems     []FundingItemRecord     `json:"fundingItems"`
	SpendingItems    []SpendingItemRecord    `json:"spendingItems"`
	ProcurementItems []ProcurementItemRecord `json:"procurementItems"`
	TrainingItems    []TrainingItemRecord    `json:"trainingItems"`
	TravelItems      []TravelItemRecord      `json:"travelItems"`
}

type Metadata struct {
	Version      int          `json:"version"`      // Snapshot format version
	ExportedBy   string       `json:"exportedBy"`   // Who requested the export
	ExportedAt   time.Time    `json:"exportedAt"`   // When the export was created
	SourceRCID   uuid.UUID    `json:"sourceRcId"`   // Responsibility centre the snapshot was taken from
	SourceRCName string       `json:"sourceRcName"` //
	SourceFYID   uuid.UUID    `json:"sourceFyId"`   // Fiscal year the snapshot was taken from
	SourceFYName string       `json:"sourceFyName"` //
	CountsByKind map[Kind]int `json:"countsByKind"` // Exported record counts per entity kind
}

// ItemRecord holds the fields shared by all line item kinds. The ID is the
// source record's identifier; an import only uses it as an opaque remap key
// and generates a placeholder when it is absent.
type ItemRecord struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      models.ItemStatus  `json:"status"`
	Category    string             `json:"category,omitempty"` // Category name, empty means uncategorized
	Allocations []AllocationRecord `json:"allocations"`
}

type FundingItemRecord struct {
	ItemRecord
}

type SpendingItemRecord struct {
	ItemRecord
	SpendingCategory string          `json:"spendingCategory,omitempty"` // Spending category name, empty means unclassified
	Events           []EventRecord   `json:"events"`
	Invoices         []InvoiceRecord `json:"invoices"`
}

type ProcurementItemRecord struct {
	ItemRecord
	Vendor string                   `json:"vendor"`
	Events []ProcurementEventRecord `json:"events"`
	Quotes []QuoteRecord            `json:"quotes"`
}

type TrainingItemRecord struct {
	ItemRecord
	Provider string `json:"provider"`
}

type TravelItemRecord struct {
	ItemRecord
	Destination string `json:"destination"`
}

// AllocationRecord references its money type by code, which an import
// resolves against the target fiscal year.
type AllocationRecord struct {
	MoneyTypeCode   string          `json:"moneyTypeCode"`
	CapitalAmount   decimal.Decimal `json:"capitalAmount"`
	OperatingAmount decimal.Decimal `json:"operatingAmount"`
}

type EventRecord struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"eventType"`
	Comment   string    `json:"comment"`
}

type ProcurementEventRecord struct {
	ID uuid.UUID `json:"id"`
	EventRecord
	Files []FileRecord `json:"files"`
}

type QuoteRecord struct {
	ID     uuid.UUID       `json:"id"`
	Vendor string          `json:"vendor"`
	Amount decimal.Decimal `json:"amount"`
	Files  []FileRecord    `json:"files"`
}

type InvoiceRecord struct {
	ID          uuid.UUID       `json:"id"`
	Reference   string          `json:"reference"`
	Amount      decimal.Decimal `json:"amount"`
	InvoiceDate time.Time       `json:"invoiceDate"`
	Files       []FileRecord    `json:"files"`
}

// FileRecord inlines a file attachment. Content is standard base64; nil
// means the payload could not be retrieved during export, which is distinct
// from an empty payload (base64 of zero bytes, the empty string).
type FileRecord struct {
	Name        string  `json:"name"`
	ContentType string  `json:"contentType"`
	Size        int64   `json:"size"`
	Description string  `json:"description"`
	Content     *string `json:"base64Content"`
}
