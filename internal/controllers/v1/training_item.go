package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// TrainingItemEditable contains the fields of a training item that can be
// set by API consumers.
type TrainingItemEditable struct {
	FiscalYearID ez_uuid.UUID         `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	CategoryID   *ez_uuid.UUID        `json:"categoryId"`
	Name         string               `json:"name" example:"Crane Operator Certification" binding:"required"`
	Description  string               `json:"description"`
	Status       models.ItemStatus    `json:"status"`
	Provider     string               `json:"provider" example:"Northern Safety Institute"`
	Allocations  []AllocationEditable `json:"allocations"`
}

func (editable TrainingItemEditable) model() models.TrainingItem {
	item := models.TrainingItem{
		FiscalYearID: editable.FiscalYearID.UUID,
		Name:         editable.Name,
		Description:  editable.Description,
		Status:       editable.Status,
		Provider:     editable.Provider,
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

type TrainingItemResponse struct {
	Data models.TrainingItem `json:"data"`
}

type TrainingItemListResponse struct {
	Data []models.TrainingItem `json:"data"`
}

func RegisterTrainingItemRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetTrainingItems)
	r.POST("", CreateTrainingItem)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetTrainingItem)
	r.PATCH("/:id", UpdateTrainingItem)
	r.DELETE("/:id", DeleteTrainingItem)
}

// CreateTrainingItem creates a new training item with its allocations.
func CreateTrainingItem(c *gin.Context) {
	var editable TrainingItemEditable
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

	c.JSON(http.StatusCreated, TrainingItemResponse{Data: item})
}

// GetTrainingItems returns training items, optionally filtered by fiscal
// year and name.
func GetTrainingItems(c *gin.Context) {
	var filter LineItemQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var items []models.TrainingItem
	if err := filter.apply(models.DB.Preload("Allocations")).Find(&items).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TrainingItemListResponse{Data: items})
}

// GetTrainingItem returns a specific training item.
func GetTrainingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.TrainingItem
	if err := models.DB.Preload("Allocations").First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TrainingItemResponse{Data: item})
}

// UpdateTrainingItem updates a training item. When the request body
// contains allocations, they replace all existing ones.
func UpdateTrainingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.TrainingItem
	if err := models.DB.First(&item, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TrainingItemEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := TrainingItemEditable{Name: item.Name}
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
			return replaceAllocations(tx, item.ID, models.OwnerTrainingItem, editable.Allocations)
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

	c.JSON(http.StatusOK, TrainingItemResponse{Data: item})
}

// DeleteTrainingItem deletes a training item.
func DeleteTrainingItem(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.TrainingItem
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
