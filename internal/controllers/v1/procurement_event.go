package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
)

// ProcurementEventEditable contains the fields of a procurement event that
// can be set by API consumers. Attachments are uploaded separately.
type ProcurementEventEditable struct {
	ProcurementItemID ez_uuid.UUID `json:"procurementItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Timestamp         time.Time    `json:"timestamp" example:"2025-05-12T09:41:00.000000Z"`
	EventType         string       `json:"eventType" example:"rfq-issued" binding:"required"`
	Comment           string       `json:"comment"`
}

func (editable ProcurementEventEditable) model() models.ProcurementEvent {
	event := models.ProcurementEvent{
		ProcurementItemID: editable.ProcurementItemID.UUID,
		Timestamp:         editable.Timestamp,
		EventType:         editable.EventType,
		Comment:           editable.Comment,
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	return event
}

type ProcurementEventResponse struct {
	Data models.ProcurementEvent `json:"data"`
}

type ProcurementEventListResponse struct {
	Data []models.ProcurementEvent `json:"data"`
}

type ProcurementEventFileResponse struct {
	Data models.ProcurementEventFile `json:"data"`
}

type ProcurementChildQueryFilter struct {
	ProcurementItem ez_uuid.UUID `form:"procurementItem"`
}

func RegisterProcurementEventRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetProcurementEvents)
	r.POST("", CreateProcurementEvent)

	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", GetProcurementEvent)
	r.DELETE("/:id", DeleteProcurementEvent)

	r.OPTIONS("/:id/files", httputil.OptionsPost)
	r.POST("/:id/files", CreateProcurementEventFile)
}

func RegisterProcurementEventFileRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", GetProcurementEventFile)
	r.DELETE("/:id", DeleteProcurementEventFile)
}

// CreateProcurementEvent appends an event to the log of a procurement
// item.
func CreateProcurementEvent(c *gin.Context) {
	var editable ProcurementEventEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.ProcurementItem
	if err := models.DB.First(&item, "id = ?", editable.ProcurementItemID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	event := editable.model()
	if err := models.DB.Create(&event).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ProcurementEventResponse{Data: event})
}

// GetProcurementEvents returns procurement events, optionally filtered by
// procurement item.
func GetProcurementEvents(c *gin.Context) {
	var filter ProcurementChildQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("timestamp ASC").Preload("Files", fileMetaQuery)
	if filter.ProcurementItem != ez_uuid.Nil {
		query = query.Where("procurement_item_id = ?", filter.ProcurementItem.UUID)
	}

	var events []models.ProcurementEvent
	if err := query.Find(&events).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcurementEventListResponse{Data: events})
}

// GetProcurementEvent returns a specific procurement event with its file
// metadata.
func GetProcurementEvent(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var event models.ProcurementEvent
	if err := models.DB.Preload("Files", fileMetaQuery).First(&event, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcurementEventResponse{Data: event})
}

// DeleteProcurementEvent deletes a procurement event.
func DeleteProcurementEvent(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var event models.ProcurementEvent
	if err := models.DB.First(&event, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&event).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// CreateProcurementEventFile uploads an attachment to a procurement event.
func CreateProcurementEventFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var event models.ProcurementEvent
	if err := models.DB.First(&event, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	meta, content, err := uploadedFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	file := models.ProcurementEventFile{
		FileMeta:           meta,
		ProcurementEventID: event.ID,
		Content:            content,
	}
	if err := models.DB.Create(&file).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ProcurementEventFileResponse{Data: file})
}

// GetProcurementEventFile downloads a procurement event attachment.
func GetProcurementEventFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var file models.ProcurementEventFile
	if err := models.DB.First(&file, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	serveFile(c, file.FileMeta, file.Content)
}

// DeleteProcurementEventFile deletes a procurement event attachment.
func DeleteProcurementEventFile(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var file models.ProcurementEventFile
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
