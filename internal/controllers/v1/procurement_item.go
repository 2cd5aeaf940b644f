package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// ProcurementItemEditable contains the fields of a procurement item that
// can be set by API consumers.
type ProcurementItemEditable struct {
	FiscalYearID ez_uuid.UUID         `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	CategoryID   *ez_uuid.UUID        `json:"categoryId"`
	Name         string               `json:"name" example:"Forklift Replacement" binding:"required"`
	Description  string               `json:"description"`
	Status       models.ItemStatus    `json:"status" example:"planned"`
	Vendor       string               `json:"vendor" example:"ACME Industrial"`
	Allocations  []AllocationEditable `json:"allocations"`
}

func (editable ProcurementItemEditable) model() models.ProcurementItem {
	item := models.ProcurementItem{
		FiscalYearID: editable.FiscalYearID.UUID,
		Name:         editable.Name,
		Description:  editable.Description,
		Status:       editable.Status,
		Vendor:       editable.Vendor,
		Allocations:  allocationModels(editable.Allocations),
	}

	if editable.Status == "" {
		item.Status = models.StatusPlanned
	}

	if editable.CategoryID != nil {
		id := editable.CategoryID.UUID
		item.CategoryID = &id
	}

	return item
}

type ProcurementItemResponse struct {
	Data models.ProcurementItem `json:"data"`
}

type ProcurementItemListResponse struct {
	Data []models.ProcurementItem `json:"data"`
}

func RegisterProcurementItemRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetProcurementItems)
	r.POST("", CreateProcurementItem)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetProcurementItem)
	r.PATCH("/:id", UpdateProcurementItem)
	r.DELETE("/:id", DeleteProcurementItem)
}

// CreateProcurementItem creates a new procurement item with its
// allocations.
func CreateProcurementItem(c *gin.Context) {
	var editable ProcurementItemEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.Status != "" && !editable.Status.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: errStatusInvalid.Error()})
		return
	}

	var fiscalYear models.FiscalYear
	if err := models.DB.First(&fiscalYear, "id = ?", editable.FiscalYearID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	item := editable.model()
	if err := models.DB.Create(&item).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ProcurementItemResponse{Data: item})
}

// GetProcurementItems returns procurement items, optionally filtered by
// fiscal year and name.
func GetProcurementItems(c *gin.Context) {
	var filter LineItemQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var items []models.ProcurementItem
	if err := filter.apply(models.DB.Preload("Allocations")).Find(&items).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcurementItemListResponse{Data: items})
}

// GetProcurementItem returns a specific procurement item with its events
// and quotes.
func GetProcurementItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.ProcurementItem
	err := models.DB.
		Preload("Allocations").
		Preload("Events").
		Preload("Events.Files", fileMetaQuery).
		Preload("Quotes").
		Preload("Quotes.Files", fileMetaQuery).
		First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcurementItemResponse{Data: item})
}

// UpdateProcurementItem updates a procurement item. When the request body
// contains allocations, they replace all existing ones.
func UpdateProcurementItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.ProcurementItem
	if err := models.DB.First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ProcurementItemEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := ProcurementItemEditable{Name: item.Name}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.Status != "" && !editable.Status.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: errStatusInvalid.Error()})
		return
	}

	fields := withoutAllocations(updateFields)
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			update := editable.model()
			update.Allocations = nil

			if err := tx.Model(&item).Select("", fields...).Updates(update).Error; err != nil {
				return err
			}
		}

		if len(fields) != len(updateFields) {
			return replaceAllocations(tx, item.ID, models.OwnerProcurementItem, editable.Allocations)
		}

		return nil
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Preload("Allocations").First(&item, "id = ?", item.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcurementItemResponse{Data: item})
}

// DeleteProcurementItem deletes a procurement item.
func DeleteProcurementItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.ProcurementItem
	if err := models.DB.First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&item).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
