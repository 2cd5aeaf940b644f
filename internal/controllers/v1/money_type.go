package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"gorm.io/gorm"
)

// clearDefaultMoneyType unsets the default flag on all money types of a
// fiscal year so that a new default can be set.
func clearDefaultMoneyType(tx *gorm.DB, fiscalYearID uuid.UUID) error {
	return tx.Model(&models.MoneyType{}).
		Where("fiscal_year_id = ?", fiscalYearID).
		Update("is_default", false).Error
}

// MoneyTypeEditable contains the fields of a money type that can be set by
// API consumers.
type MoneyTypeEditable struct {
	FiscalYearID ez_uuid.UUID `json:"fiscalYearId" example:"a2f45079-9a7e-4f31-b4cd-0a9f1753fc50"`
	Code         string       `json:"code" example:"AB" binding:"required"`
	Name         string       `json:"name" example:"Annual budget"`
	IsDefault    bool         `json:"isDefault" example:"true"`
	DisplayOrder uint         `json:"displayOrder" example:"1"`
}

func (editable MoneyTypeEditable) model() models.MoneyType {
	return models.MoneyType{
		FiscalYearID: editable.FiscalYearID.UUID,
		Code:         editable.Code,
		Name:         editable.Name,
		IsDefault:    editable.IsDefault,
		DisplayOrder: editable.DisplayOrder,
	}
}

type MoneyTypeResponse struct {
	Data models.MoneyType `json:"data"`
}

type MoneyTypeListResponse struct {
	Data []models.MoneyType `json:"data"`
}

type MoneyTypeQueryFilter struct {
	FiscalYear ez_uuid.UUID `form:"fiscalYear"`
}

func RegisterMoneyTypeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetMoneyTypes)
	r.POST("", CreateMoneyType)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetMoneyType)
	r.PATCH("/:id", UpdateMoneyType)
	r.DELETE("/:id", DeleteMoneyType)
}

// CreateMoneyType creates a new money type.
func CreateMoneyType(c *gin.Context) {
	var editable MoneyTypeEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var fiscalYear models.FiscalYear
	if err := models.DB.First(&fiscalYear, "id = ?", editable.FiscalYearID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	moneyType := editable.model()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if moneyType.IsDefault {
			if err := clearDefaultMoneyType(tx, moneyType.FiscalYearID); err != nil {
				return err
			}
		}

		return tx.Create(&moneyType).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, MoneyTypeResponse{Data: moneyType})
}

// GetMoneyTypes returns money types, optionally filtered by fiscal year.
func GetMoneyTypes(c *gin.Context) {
	var filter MoneyTypeQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("display_order ASC, code ASC")
	if filter.FiscalYear != ez_uuid.Nil {
		query = query.Where("fiscal_year_id = ?", filter.FiscalYear.UUID)
	}

	var moneyTypes []models.MoneyType
	if err := query.Find(&moneyTypes).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MoneyTypeListResponse{Data: moneyTypes})
}

// GetMoneyType returns a specific money type.
func GetMoneyType(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var moneyType models.MoneyType
	if err := models.DB.First(&moneyType, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MoneyTypeResponse{Data: moneyType})
}

// UpdateMoneyType updates a money type.
func UpdateMoneyType(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var moneyType models.MoneyType
	if err := models.DB.First(&moneyType, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MoneyTypeEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := MoneyTypeEditable{Code: moneyType.Code}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if editable.IsDefault {
			if err := clearDefaultMoneyType(tx, moneyType.FiscalYearID); err != nil {
				return err
			}
		}

		return tx.Model(&moneyType).Select("", updateFields...).Updates(editable.model()).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MoneyTypeResponse{Data: moneyType})
}

// DeleteMoneyType deletes a money type.
func DeleteMoneyType(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var moneyType models.MoneyType
	if err := models.DB.First(&moneyType, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&moneyType).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
