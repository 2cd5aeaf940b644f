package models

import (
	"time"

	"github.com/google/uuid"
)

// SpendingEvent is a log entry for a status change on a spending item.
type SpendingEvent struct {
	DefaultModel
	SpendingItemID uuid.UUID    `json:"spendingItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	SpendingItem   SpendingItem `json:"-"`
	Timestamp      time.Time    `json:"timestamp" example:"2025-06-30T14:02:37.000000Z"`
	EventType      string       `json:"eventType" example:"status-change"`
	Comment        string       `json:"comment" example:"Committed after Q1 review" default:""`
}
