package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// TravelItemEditable contains the fields of a travel item that can be set
// by API consumers.
type TravelItemEditable struct {
	FiscalYearID ez_uuid.UUID         `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	CategoryID   *ez_uuid.UUID        `json:"categoryId"`
	Name         string               `json:"name" example:"Regional Conference" binding:"required"`
	Description  string               `json:"description"`
	Status       models.ItemStatus    `json:"status"`
	Destination  string               `json:"destination" example:"Halifax"`
	Allocations  []AllocationEditable `json:"allocations"`
}

func (editable TravelItemEditable) model() models.TravelItem {
	item := models.TravelItem{
		FiscalYearID: editable.FiscalYearID.UUID,
		Name:         editable.Name,
		Description:  editable.Description,
		Status:       editable.Status,
		Destination:  editable.Destination,
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

type TravelItemResponse struct {
	Data models.TravelItem `json:"data"`
}

type TravelItemListResponse struct {
	Data []models.TravelItem `json:"data"`
}

func RegisterTravelItemRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetTravelItems)
	r.POST("", CreateTravelItem)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetTravelItem)
	r.PATCH("/:id", UpdateTravelItem)
	r.DELETE("/:id", DeleteTravelItem)
}

// CreateTravelItem creates a new travel item with its allocations.
func CreateTravelItem(c *gin.Context) {
	var editable TravelItemEditable
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

	c.JSON(http.StatusCreated, TravelItemResponse{Data: item})
}

// GetTravelItems returns travel items, optionally filtered by fiscal year
// and name.
func GetTravelItems(c *gin.Context) {
	var filter LineItemQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var items []models.TravelItem
	if err := filter.apply(models.DB.Preload("Allocations")).Find(&items).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TravelItemListResponse{Data: items})
}

// GetTravelItem returns a specific travel item.
func GetTravelItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.TravelItem
	if err := models.DB.Preload("Allocations").First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TravelItemResponse{Data: item})
}

// UpdateTravelItem updates a travel item. When the request body contains
// allocations, they replace all existing ones.
func UpdateTravelItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.TravelItem
	if err := models.DB.First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TravelItemEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := TravelItemEditable{Name: item.Name}
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
			return replaceAllocations(tx, item.ID, models.OwnerTravelItem, editable.Allocations)
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

	c.JSON(http.StatusOK, TravelItemResponse{Data: item})
}

// DeleteTravelItem deletes a travel item.
func DeleteTravelItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.TravelItem
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
