package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
)

// ResponsibilityCentreEditable contains the fields of a responsibility
// centre that can be set by API consumers.
type ResponsibilityCentreEditable struct {
	Name string `json:"name" example:"Fleet Maintenance" binding:"required"`
	Note string `json:"note" example:"Everything the fleet shop owns and spends"`
}

func (editable ResponsibilityCentreEditable) model() models.ResponsibilityCentre {
	return models.ResponsibilityCentre{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type ResponsibilityCentreResponse struct {
	Data models.ResponsibilityCentre `json:"data"`
}

type ResponsibilityCentreListResponse struct {
	Data []models.ResponsibilityCentre `json:"data"`
}

func RegisterResponsibilityCentreRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetResponsibilityCentres)
	r.POST("", CreateResponsibilityCentre)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetResponsibilityCentre)
	r.PATCH("/:id", UpdateResponsibilityCentre)
	r.DELETE("/:id", DeleteResponsibilityCentre)
}

// CreateResponsibilityCentre creates a new responsibility centre.
func CreateResponsibilityCentre(c *gin.Context) {
	var editable ResponsibilityCentreEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	centre := editable.model()
	if err := models.DB.Create(&centre).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ResponsibilityCentreResponse{Data: centre})
}

// GetResponsibilityCentres returns all responsibility centres.
func GetResponsibilityCentres(c *gin.Context) {
	var centres []models.ResponsibilityCentre
	if err := models.DB.Order("name ASC").Find(&centres).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResponsibilityCentreListResponse{Data: centres})
}

// GetResponsibilityCentre returns a specific responsibility centre.
func GetResponsibilityCentre(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var centre models.ResponsibilityCentre
	if err := models.DB.First(&centre, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResponsibilityCentreResponse{Data: centre})
}

// UpdateResponsibilityCentre updates a responsibility centre.
func UpdateResponsibilityCentre(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var centre models.ResponsibilityCentre
	if err := models.DB.First(&centre, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ResponsibilityCentreEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := ResponsibilityCentreEditable{Name: centre.Name}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Model(&centre).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResponsibilityCentreResponse{Data: centre})
}

// DeleteResponsibilityCentre deletes a responsibility centre.
func DeleteResponsibilityCentre(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var centre models.ResponsibilityCentre
	if err := models.DB.First(&centre, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&centre).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
