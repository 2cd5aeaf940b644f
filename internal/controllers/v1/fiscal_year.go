package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/duplicate"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// FiscalYearEditable contains the fields of a fiscal year that can be set
// by API consumers.
type FiscalYearEditable struct {
	Name                   string          `json:"name" example:"FY 2025-2026" binding:"required"`
	ResponsibilityCentreID ez_uuid.UUID    `json:"responsibilityCentreId" example:"550dc76a-aa66-4686-8e49-4b53e1b006e9"`
	ShowSearch             bool            `json:"showSearch" example:"true"`
	ShowFilters            bool            `json:"showFilters" example:"false"`
	OnTargetLowerPct       decimal.Decimal `json:"onTargetLowerPct" example:"95"`
	OnTargetUpperPct       decimal.Decimal `json:"onTargetUpperPct" example:"105"`
}

func (editable FiscalYearEditable) model() models.FiscalYear {
	return models.FiscalYear{
		Name:                   editable.Name,
		ResponsibilityCentreID: editable.ResponsibilityCentreID.UUID,
		ShowSearch:             editable.ShowSearch,
		ShowFilters:            editable.ShowFilters,
		OnTargetLowerPct:       editable.OnTargetLowerPct,
		OnTargetUpperPct:       editable.OnTargetUpperPct,
	}
}

type FiscalYearResponse struct {
	Data models.FiscalYear `json:"data"`
}

type FiscalYearListResponse struct {
	Data []models.FiscalYear `json:"data"`
}

// FiscalYearQueryFilter contains the supported query string parameters for
// the fiscal year list endpoint.
type FiscalYearQueryFilter struct {
	ResponsibilityCentre ez_uuid.UUID `form:"responsibilityCentre"`
}

// CloneEditable is the request body for cloning a fiscal year.
type CloneEditable struct {
	Name                   string       `json:"name" example:"FY 2026-2027" binding:"required"`
	ResponsibilityCentreID ez_uuid.UUID `json:"responsibilityCentreId" example:"550dc76a-aa66-4686-8e49-4b53e1b006e9"`
}

// ImportResponse wraps the result of a snapshot import.
type ImportResponse struct {
	Data duplicate.Result `json:"data"`
}

func RegisterFiscalYearRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetFiscalYears)
	r.POST("", CreateFiscalYear)

	r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
	r.GET("/:id", GetFiscalYear)
	r.PATCH("/:id", UpdateFiscalYear)
	r.DELETE("/:id", DeleteFiscalYear)

	r.OPTIONS("/:id/clone", httputil.OptionsPost)
	r.POST("/:id/clone", CloneFiscalYear)

	r.OPTIONS("/:id/export", httputil.OptionsGet)
	r.GET("/:id/export", ExportFiscalYear)

	r.OPTIONS("/:id/import", httputil.OptionsPost)
	r.POST("/:id/import", ImportFiscalYear)
}

// CreateFiscalYear creates a new fiscal year.
func CreateFiscalYear(c *gin.Context) {
	var editable FiscalYearEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// The responsibility centre has to exist
	var centre models.ResponsibilityCentre
	if err := models.DB.First(&centre, "id = ?", editable.ResponsibilityCentreID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	fiscalYear := editable.model()
	if err := models.DB.Create(&fiscalYear).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, FiscalYearResponse{Data: fiscalYear})
}

// GetFiscalYears returns fiscal years, optionally filtered by
// responsibility centre.
func GetFiscalYears(c *gin.Context) {
	var filter FiscalYearQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("name ASC")
	if filter.ResponsibilityCentre.UUID != ez_uuid.Nil.UUID {
		query = query.Where("responsibility_centre_id = ?", filter.ResponsibilityCentre.UUID)
	}

	var fiscalYears []models.FiscalYear
	if err := query.Find(&fiscalYears).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FiscalYearListResponse{Data: fiscalYears})
}

// GetFiscalYear returns a specific fiscal year.
func GetFiscalYear(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var fiscalYear models.FiscalYear
	if err := models.DB.First(&fiscalYear, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FiscalYearResponse{Data: fiscalYear})
}

// UpdateFiscalYear updates a fiscal year.
func UpdateFiscalYear(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var fiscalYear models.FiscalYear
	if err := models.DB.First(&fiscalYear, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FiscalYearEditable{})
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// Required fields keep their current value when the body omits them.
	editable := FiscalYearEditable{Name: fiscalYear.Name}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Model(&fiscalYear).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, FiscalYearResponse{Data: fiscalYear})
}

// DeleteFiscalYear deletes a fiscal year.
func DeleteFiscalYear(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var fiscalYear models.FiscalYear
	if err := models.DB.First(&fiscalYear, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&fiscalYear).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// CloneFiscalYear copies a fiscal year with all its resources into a
// responsibility centre.
func CloneFiscalYear(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var editable CloneEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	targetCentreID := editable.ResponsibilityCentreID.UUID
	if targetCentreID == ez_uuid.Nil.UUID {
		// Clone into the centre the source fiscal year belongs to
		var source models.FiscalYear
		if err := models.DB.First(&source, "id = ?", uri.ID.UUID).Error; err != nil {
			c.JSON(status(err), httpError{Error: err.Error()})
			return
		}
		targetCentreID = source.ResponsibilityCentreID
	}

	fiscalYear, err := duplicate.Clone(models.DB, uri.ID.UUID, editable.Name, targetCentreID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, FiscalYearResponse{Data: fiscalYear})
}

// ExportFiscalYear exports all line items of a fiscal year as a snapshot
// document.
func ExportFiscalYear(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	exportedBy := c.Query("exportedBy")
	if exportedBy == "" {
		exportedBy = "api"
	}

	snapshot, err := duplicate.Export(models.DB, uri.ID.UUID, exportedBy)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="snapshot.json"`)
	c.JSON(http.StatusOK, snapshot)
}

// ImportFiscalYear imports line items from a snapshot document into a
// fiscal year. Items can be filtered by name with the "match" query
// parameter, which supports "*" globbing.
func ImportFiscalYear(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var snapshot duplicate.Snapshot
	if err := httputil.BindData(c, &snapshot); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var fiscalYear models.FiscalYear
	if err := models.DB.First(&fiscalYear, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	result, err := duplicate.Import(models.DB, fiscalYear.ResponsibilityCentreID, fiscalYear.ID, snapshot, duplicate.Options{
		NameGlob: c.Query("match"),
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ImportResponse{Data: result})
}
