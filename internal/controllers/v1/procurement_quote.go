package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// ProcurementQuoteEditable contains the fields of a procurement quote that
// can be set by API consumers. Attachments are uploaded separately.
type ProcurementQuoteEditable struct {
	ProcurementItemID ez_uuid.UUID    `json:"procurementItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Vendor            string          `json:"vendor" example:"ACME Industrial" binding:"required"`
	Amount            decimal.Decimal `json:"amount" example:"48000"`
}

func (editable ProcurementQuoteEditable) model() models.ProcurementQuote {
	return models.ProcurementQuote{
		ProcurementItemID: editable.ProcurementItemID.UUID,
		Vendor:            editable.Vendor,
		Amount:            editable.Amount,
	}
}

type ProcurementQuoteResponse struct {
	Data models.ProcurementQuote `json:"data"`
}

type ProcurementQuoteListResponse struct {
	Data []models.ProcurementQuote `json:"data"`
}

type ProcurementQuoteFileResponse struct {
	Data models.ProcurementQuoteFile `json:"data"`
}

func RegisterProcurementQuoteRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetProcurementQuotes)
	r.POST("", CreateProcurementQuote)

	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", GetProcurementQuote)
	r.DELETE("/:id", DeleteProcurementQuote)

	r.OPTIONS("/:id/files", httputil.OptionsPost)
	r.POST("/:id/files", CreateProcurementQuoteFile)
}

func RegisterProcurementQuoteFileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", GetProcurementQuoteFile)
	r.DELETE("/:id", DeleteProcurementQuoteFile)
}

// CreateProcurementQuote records a vendor quote for a procurement item.
func CreateProcurementQuote(c *gin.Context) {
	var editable ProcurementQuoteEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.ProcurementItem
	if err := models.DB.First(&item, "id = ?", editable.ProcurementItemID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	quote := editable.model()
	if err := models.DB.Create(&quote).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ProcurementQuoteResponse{Data: quote})
}

// GetProcurementQuotes returns procurement quotes, optionally filtered by
// procurement item.
func GetProcurementQuotes(c *gin.Context) {
	var filter ProcurementChildQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("vendor ASC").Preload("Files", fileMetaQuery)
	if filter.ProcurementItem != ez_uuid.Nil {
		query = query.Where("procurement_item_id = ?", filter.ProcurementItem.UUID)
	}

	var quotes []models.ProcurementQuote
	if err := query.Find(&quotes).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcurementQuoteListResponse{Data: quotes})
}

// GetProcurementQuote returns a specific procurement quote with its file
// metadata.
func GetProcurementQuote(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var quote models.ProcurementQuote
	if err := models.DB.Preload("Files", fileMetaQuery).First(&quote, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcurementQuoteResponse{Data: quote})
}

// DeleteProcurementQuote deletes a procurement quote.
func DeleteProcurementQuote(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var quote models.ProcurementQuote
	if err := models.DB.First(&quote, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&quote).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// CreateProcurementQuoteFile uploads an attachment to a procurement quote.
func CreateProcurementQuoteFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var quote models.ProcurementQuote
	if err := models.DB.First(&quote, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	meta, content, err := uploadedFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	file := models.ProcurementQuoteFile{
		FileMeta:           meta,
		ProcurementQuoteID: quote.ID,
		Content:            content,
	}
	if err := models.DB.Create(&file).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ProcurementQuoteFileResponse{Data: file})
}

// GetProcurementQuoteFile downloads a procurement quote attachment.
func GetProcurementQuoteFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var file models.ProcurementQuoteFile
	if err := models.DB.First(&file, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	serveFile(c, file.FileMeta, file.Content)
}

// DeleteProcurementQuoteFile deletes a procurement quote attachment.
func DeleteProcurementQuoteFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var file models.ProcurementQuoteFile
	if err := models.DB.Omit("content").First(&file, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&file).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
