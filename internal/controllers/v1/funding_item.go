package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// FundingItemEditable contains the fields of a funding item that can be
// set by API consumers.
type FundingItemEditable struct {
	FiscalYearID ez_uuid.UUID         `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	CategoryID   *ez_uuid.UUID        `json:"categoryId" example:"e5b9f9b1-7b33-42cf-939c-9f01f24c40b4"`
	Name         string               `json:"name" example:"Infrastructure Grant" binding:"required"`
	Description  string               `json:"description" example:"Annual infrastructure top-up"`
	Status       models.ItemStatus    `json:"status" example:"planned"`
	Allocations  []AllocationEditable `json:"allocations"`
}

func (editable FundingItemEditable) model() models.FundingItem {
	item := models.FundingItem{
		FiscalYearID: editable.FiscalYearID.UUID,
		Name:         editable.Name,
		Description:  editable.Description,
		Status:       editable.Status,
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

type FundingItemResponse struct {
	Data models.FundingItem `json:"data"`
}

type FundingItemListResponse struct {
	Data []models.FundingItem `json:"data"`
}

func RegisterFundingItemRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetFundingItems)
	r.POST("", CreateFundingItem)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetFundingItem)
	r.PATCH("/:id", UpdateFundingItem)
	r.DELETE("/:id", DeleteFundingItem)
}

// CreateFundingItem creates a new funding item with its allocations.
func CreateFundingItem(c *gin.Context) {
	var editable FundingItemEditable
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

	c.JSON(http.StatusCreated, FundingItemResponse{Data: item})
}

// GetFundingItems returns funding items, optionally filtered by fiscal
// year and name.
func GetFundingItems(c *gin.Context) {
	var filter LineItemQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var items []models.FundingItem
	if err := filter.apply(models.DB.Preload("Allocations")).Find(&items).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FundingItemListResponse{Data: items})
}

// GetFundingItem returns a specific funding item.
func GetFundingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.FundingItem
	if err := models.DB.Preload("Allocations").First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FundingItemResponse{Data: item})
}

// UpdateFundingItem updates a funding item. When the request body contains
// allocations, they replace all existing ones.
func UpdateFundingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.FundingItem
	if err := models.DB.First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FundingItemEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := FundingItemEditable{Name: item.Name}
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
			return replaceAllocations(tx, item.ID, models.OwnerFundingItem, editable.Allocations)
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

	c.JSON(http.StatusOK, FundingItemResponse{Data: item})
}

// DeleteFundingItem deletes a funding item.
func DeleteFundingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.FundingItem
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
