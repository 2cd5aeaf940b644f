package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// SpendingItemEditable contains the fields of a spending item that can be
// set by API consumers.
type SpendingItemEditable struct {
	FiscalYearID       ez_uuid.UUID         `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	CategoryID         *ez_uuid.UUID        `json:"categoryId"`
	SpendingCategoryID *ez_uuid.UUID        `json:"spendingCategoryId"`
	Name               string               `json:"name" example:"Workshop Supplies" binding:"required"`
	Description        string               `json:"description"`
	Status             models.ItemStatus    `json:"status" example:"committed"`
	Allocations        []AllocationEditable `json:"allocations"`
}

func (editable SpendingItemEditable) model() models.SpendingItem {
	item := models.SpendingItem{
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

	if editable.SpendingCategoryID != nil {
		id := editable.SpendingCategoryID.UUID
		item.SpendingCategoryID = &id
	}

	return item
}

type SpendingItemResponse struct {
	Data models.SpendingItem `json:"data"`
}

type SpendingItemListResponse struct {
	Data []models.SpendingItem `json:"data"`
}

func RegisterSpendingItemRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetSpendingItems)
	r.POST("", CreateSpendingItem)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetSpendingItem)
	r.PATCH("/:id", UpdateSpendingItem)
	r.DELETE("/:id", DeleteSpendingItem)
}

// CreateSpendingItem creates a new spending item with its allocations.
func CreateSpendingItem(c *gin.Context) {
	var editable SpendingItemEditable
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

	c.JSON(http.StatusCreated, SpendingItemResponse{Data: item})
}

// GetSpendingItems returns spending items, optionally filtered by fiscal
// year and name.
func GetSpendingItems(c *gin.Context) {
	var filter LineItemQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var items []models.SpendingItem
	if err := filter.apply(models.DB.Preload("Allocations")).Find(&items).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingItemListResponse{Data: items})
}

// GetSpendingItem returns a specific spending item with its events and
// invoices.
func GetSpendingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.SpendingItem
	err := models.DB.
		Preload("Allocations").
		Preload("Events").
		Preload("Invoices").
		Preload("Invoices.Files", fileMetaQuery).
		First(&item, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingItemResponse{Data: item})
}

// UpdateSpendingItem updates a spending item. When the request body
// contains allocations, they replace all existing ones.
func UpdateSpendingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.SpendingItem
	if err := models.DB.First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SpendingItemEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := SpendingItemEditable{Name: item.Name}
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
			return replaceAllocations(tx, item.ID, models.OwnerSpendingItem, editable.Allocations)
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

	c.JSON(http.StatusOK, SpendingItemResponse{Data: item})
}

// DeleteSpendingItem deletes a spending item.
func DeleteSpendingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.SpendingItem
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
