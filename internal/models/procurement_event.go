package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcurementEvent is a log entry for a status change on a procurement item.
type ProcurementEvent struct {
	DefaultModel
	ProcurementItemID uuid.UUID       `json:"procurementItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	ProcurementItem   ProcurementItem `json:"-"`
	Timestamp         time.Time       `json:"timestamp" example:"2025-05-12T09:41:00.000000Z"`
	EventType         string          `json:"eventType" example:"rfq-issued"`
	Comment           string          `json:"comment" default:""`

	Files []ProcurementEventFile `json:"files"`
}

// BeforeDelete removes the files attached to the event.
func (e *ProcurementEvent) BeforeDelete(tx *gorm.DB) error {
	return tx.Where("procurement_event_id = ?", e.ID).Delete(&ProcurementEventFile{}).Error
}
