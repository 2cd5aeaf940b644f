package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// SpendingInvoiceEditable contains the fields of a spending invoice that
// can be set by API consumers. Attachments are uploaded separately.
type SpendingInvoiceEditable struct {
	SpendingItemID ez_uuid.UUID    `json:"spendingItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Reference      string          `json:"reference" example:"INV-2025-1138" binding:"required"`
	Amount         decimal.Decimal `json:"amount" example:"1312.50"`
	InvoiceDate    time.Time       `json:"invoiceDate" example:"2025-06-30T00:00:00.000000Z"`
}

func (editable SpendingInvoiceEditable) model() models.SpendingInvoice {
	return models.SpendingInvoice{
		SpendingItemID: editable.SpendingItemID.UUID,
		Reference:      editable.Reference,
		Amount:         editable.Amount,
		InvoiceDate:    editable.InvoiceDate,
	}
}

type SpendingInvoiceResponse struct {
	Data models.SpendingInvoice `json:"data"`
}

type SpendingInvoiceListResponse struct {
	Data []models.SpendingInvoice `json:"data"`
}

type SpendingInvoiceFileResponse struct {
	Data models.SpendingInvoiceFile `json:"data"`
}

func RegisterSpendingInvoiceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetSpendingInvoices)
	r.POST("", CreateSpendingInvoice)

	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", GetSpendingInvoice)
	r.DELETE("/:id", DeleteSpendingInvoice)

	r.OPTIONS("/:id/files", httputil.OptionsPost)
	r.POST("/:id/files", CreateSpendingInvoiceFile)
}

func RegisterSpendingInvoiceFileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", GetSpendingInvoiceFile)
	r.DELETE("/:id", DeleteSpendingInvoiceFile)
}

// CreateSpendingInvoice records an invoice for a spending item.
func CreateSpendingInvoice(c *gin.Context) {
	var editable SpendingInvoiceEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.SpendingItem
	if err := models.DB.First(&item, "id = ?", editable.SpendingItemID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	invoice := editable.model()
	if err := models.DB.Create(&invoice).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SpendingInvoiceResponse{Data: invoice})
}

// GetSpendingInvoices returns spending invoices, optionally filtered by
// spending item.
func GetSpendingInvoices(c *gin.Context) {
	var filter SpendingEventQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("invoice_date ASC").Preload("Files", fileMetaQuery)
	if filter.SpendingItem != ez_uuid.Nil {
		query = query.Where("spending_item_id = ?", filter.SpendingItem.UUID)
	}

	var invoices []models.SpendingInvoice
	if err := query.Find(&invoices).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingInvoiceListResponse{Data: invoices})
}

// GetSpendingInvoice returns a specific spending invoice with its file
// metadata.
func GetSpendingInvoice(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var invoice models.SpendingInvoice
	if err := models.DB.Preload("Files", fileMetaQuery).First(&invoice, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingInvoiceResponse{Data: invoice})
}

// DeleteSpendingInvoice deletes a spending invoice.
func DeleteSpendingInvoice(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var invoice models.SpendingInvoice
	if err := models.DB.First(&invoice, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&invoice).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// CreateSpendingInvoiceFile uploads an attachment to a spending invoice.
func CreateSpendingInvoiceFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var invoice models.SpendingInvoice
	if err := models.DB.First(&invoice, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	meta, content, err := uploadedFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	file := models.SpendingInvoiceFile{
		FileMeta:          meta,
		SpendingInvoiceID: invoice.ID,
		Content:           content,
	}
	if err := models.DB.Create(&file).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SpendingInvoiceFileResponse{Data: file})
}

// GetSpendingInvoiceFile downloads a spending invoice attachment.
func GetSpendingInvoiceFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var file models.SpendingInvoiceFile
	if err := models.DB.First(&file, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	serveFile(c, file.FileMeta, file.Content)
}

// DeleteSpendingInvoiceFile deletes a spending invoice attachment.
func DeleteSpendingInvoiceFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var file models.SpendingInvoiceFile
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
