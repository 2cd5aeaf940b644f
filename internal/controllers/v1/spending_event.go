package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	ez_uuid "github.com/rcbudget/backend/internal/uuid"
)

// SpendingEventEditable contains the fields of a spending event that can
// be set by API consumers.
type SpendingEventEditable struct {
	SpendingItemID ez_uuid.UUID `json:"spendingItemId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	Timestamp      time.Time    `json:"timestamp" example:"2025-06-30T14:02:37.000000Z"`
	EventType      string       `json:"eventType" example:"status-change" binding:"required"`
	Comment        string       `json:"comment" example:"Committed after Q1 review"`
}

func (editable SpendingEventEditable) model() models.SpendingEvent {
	event := models.SpendingEvent{
		SpendingItemID: editable.SpendingItemID.UUID,
		Timestamp:      editable.Timestamp,
		EventType:      editable.EventType,
		Comment:        editable.Comment,
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	return event
}

type SpendingEventResponse struct {
	Data models.SpendingEvent `json:"data"`
}

type SpendingEventListResponse struct {
	Data []models.SpendingEvent `json:"data"`
}

type SpendingEventQueryFilter struct {
	SpendingItem ez_uuid.UUID `form:"spendingItem"`
}

func RegisterSpendingEventRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetSpendingEvents)
	r.POST("", CreateSpendingEvent)

	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", GetSpendingEvent)
	r.DELETE("/:id", DeleteSpendingEvent)
}

// CreateSpendingEvent appends an event to the log of a spending item.
func CreateSpendingEvent(c *gin.Context) {
	var editable SpendingEventEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var item models.SpendingItem
	if err := models.DB.First(&item, "id = ?", editable.SpendingItemID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	event := editable.model()
	if err := models.DB.Create(&event).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SpendingEventResponse{Data: event})
}

// GetSpendingEvents returns spending events, optionally filtered by
// spending item.
func GetSpendingEvents(c *gin.Context) {
	var filter SpendingEventQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	query := models.DB.Order("timestamp ASC")
	if filter.SpendingItem != ez_uuid.Nil {
		query = query.Where("spending_item_id = ?", filter.SpendingItem.UUID)
	}

	var events []models.SpendingEvent
	if err := query.Find(&events).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingEventListResponse{Data: events})
}

// GetSpendingEvent returns a specific spending event.
func GetSpendingEvent(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var event models.SpendingEvent
	if err := models.DB.First(&event, "id = ?", uri.ID.UUID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SpendingEventResponse{Data: event})
}

// DeleteSpendingEvent deletes a spending event.
func DeleteSpendingEvent(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var event models.SpendingEvent
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
