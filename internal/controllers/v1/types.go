package v1

import (
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
)

// URIID is the URI parameter for all routes that operate on a single resource.
type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required"`
}
