package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
)

// SpendingCategoryEditable contains the fields of a spending category that
// can be set by API consumers.
type SpendingCategoryEditable struct {
	FiscalYearID       ez_uuid.UUID              `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	Name               string                    `json:"name" example:"Contracted Services" binding:"required"`
	FundingRestriction models.FundingRestriction `json:"fundingRestriction" example:"operating"`
	IsDefault          bool                      `json:"isDefault" example:"false"`
	DisplayOrder       uint                      `json:"displayOrder" example:"1"`
}

func (editable SpendingCategoryEditable) model() models.SpendingCategory {
	restriction := editable.FundingRestriction
	if restriction == "" {
		restriction = models.RestrictionBoth
	}

	return models.SpendingCategory{
		FiscalYearID:       editable.FiscalYearID.UUID,
		Name:               editable.Name,
		FundingRestriction: restriction,
		IsDefault:          editable.IsDefault,
		DisplayOrder:       editable.DisplayOrder,
	}
}

type SpendingCategoryResponse struct {
	Data models.SpendingCategory `json:"data"`
}

type SpendingCategoryListResponse struct {
	Data []models.SpendingCategory `json:"data"`
}

func RegisterSpendingCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetSpendingCategories)
	r.POST("", CreateSpendingCategory)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetSpendingCategory)
	r.PATCH("/:id", UpdateSpendingCategory)
	r.DELETE("/:id", DeleteSpendingCategory)
}

// CreateSpendingCategory creates a new spending category.
func CreateSpendingCategory(c *gin.Context) {
	var editable SpendingCategoryEditable
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

	spendingCategory := editable.model()
	if err := models.DB.Create(&spendingCategory).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SpendingCategoryResponse{Data: spendingCategory})
}

// GetSpendingCategories returns spending categories, optionally filtered by
// fiscal year.
func GetSpendingCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("name ASC")
	if filter.FiscalYear != ez_uuid.Nil {
		query = query.Where("fiscal_year_id = ?", filter.FiscalYear.UUID)
	}

	var spendingCategories []models.SpendingCategory
	if err := query.Find(&spendingCategories).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingCategoryListResponse{Data: spendingCategories})
}

// GetSpendingCategory returns a specific spending category.
func GetSpendingCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var spendingCategory models.SpendingCategory
	if err := models.DB.First(&spendingCategory, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingCategoryResponse{Data: spendingCategory})
}

// UpdateSpendingCategory updates a spending category.
func UpdateSpendingCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var spendingCategory models.SpendingCategory
	if err := models.DB.First(&spendingCategory, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SpendingCategoryEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := SpendingCategoryEditable{Name: spendingCategory.Name}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if editable.FundingRestriction != "" && !editable.FundingRestriction.Valid() {
		c.JSON(http.StatusBadRequest, httpError{Error: errFundingRestrictionInvalid.Error()})
		return
	}

	if err := models.DB.Model(&spendingCategory).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingCategoryResponse{Data: spendingCategory})
}

// DeleteSpendingCategory deletes a spending category.
func DeleteSpendingCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var spendingCategory models.SpendingCategory
	if err := models.DB.First(&spendingCategory, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&spendingCategory).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
