package models

import (
	"gorm.io/gorm"
)

// ResponsibilityCentre is the highest level of organization. Every other
// resource references it directly or transitively.
type ResponsibilityCentre struct {
	DefaultModel
	Name string `json:"name" gorm:"uniqueIndex" example:"Fleet Maintenance"` // Name of the responsibility centre
	Note string `json:"note" example:"East region" default:""`              // Notes about the responsibility centre
}

// BeforeDelete removes the fiscal years of the centre, which in turn remove
// everything they contain.
func (r *ResponsibilityCentre) BeforeDelete(tx *gorm.DB) error {
	return deleteOwned[FiscalYear](tx, "responsibility_centre_id = ?", r.ID)
}
