package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/models"
)

// Cleanup permanently deletes all resources. It requires the confirm query
// parameter to be set to "yes-please-delete-everything".
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Foreign keys are checked during cleanup,
	// add new models *before* any of the models
	// they reference
	resources := []any{
		models.ProcurementQuoteFile{},
		models.ProcurementEventFile{},
		models.SpendingInvoiceFile{},
		models.ProcurementQuote{},
		models.ProcurementEvent{},
		models.SpendingInvoice{},
		models.SpendingEvent{},
		models.MoneyAllocation{},
		models.FundingItem{},
		models.SpendingItem{},
		models.ProcurementItem{},
		models.TrainingItem{},
		models.TravelItem{},
		models.SpendingCategory{},
		models.Category{},
		models.MoneyType{},
		models.FiscalYear{},
		models.ResponsibilityCentre{},
	}

	// Use a transaction so that we can roll back if errors happen
	tx := models.DB.Begin()

	for _, model := range resources {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
