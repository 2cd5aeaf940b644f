package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
)

// CategoryEditable contains the fields of a category that can be set by
// API consumers.
type CategoryEditable struct {
	FiscalYearID       ez_uuid.UUID              `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	Name               string                    `json:"name" example:"Vehicles" binding:"required"`
	FundingRestriction models.FundingRestriction `json:"fundingRestriction" example:"capital"`
	IsDefault          bool                      `json:"isDefault" example:"false"`
	DisplayOrder       uint                      `json:"displayOrder" example:"1"`
}

func (editable CategoryEditable) model() models.Category {
	restriction := editable.FundingRestriction
	if restriction == "" {
		restriction = models.RestrictionBoth
	}

	return models.Category{
		FiscalYearID:       editable.FiscalYearID.UUID,
		Name:               editable.Name,
		FundingRestriction: restriction,
		IsDefault:          editable.IsDefault,
		DisplayOrder:       editable.DisplayOrder,
	}
}

type CategoryResponse struct {
	Data models.Category `json:"data"`
}

type CategoryListResponse struct {
	Data []models.Category `json:"data"`
}

type CategoryQueryFilter struct {
	FiscalYear ez_uuid.UUID `form:"fiscalYear"`
}

func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetCategories)
	r.POST("", CreateCategory)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetCategory)
	r.PATCH("/:id", UpdateCategory)
	r.DELETE("/:id", DeleteCategory)
}

// CreateCategory creates a new category.
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.FundingRestriction != "" && !editable.FundingRestriction.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: errFundingRestrictionInvalid.Error()})
		return
	}

	var fiscalYear models.FiscalYear
	if err := models.DB.First(&fiscalYear, "id = ?", editable.FiscalYearID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	category := editable.model()
	if err := models.DB.Create(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: category})
}

// GetCategories returns categories, optionally filtered by fiscal year.
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("name ASC")
	if filter.FiscalYear != ez_uuid.Nil {
		query = query.Where("fiscal_year_id = ?", filter.FiscalYear.UUID)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// GetCategory returns a specific category.
func GetCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// UpdateCategory updates a category.
func UpdateCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := CategoryEditable{Name: category.Name}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.FundingRestriction != "" && !editable.FundingRestriction.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: errFundingRestrictionInvalid.Error()})
		return
	}

	if err := models.DB.Model(&category).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// DeleteCategory deletes a category.
func DeleteCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
