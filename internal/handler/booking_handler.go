package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rpl-maker-lab/service-booking/internal/application"
	"github.com/rpl-maker-lab/service-booking/internal/domain/booking"
	"github.com/rpl-maker-lab/service-booking/internal/response"
)

// BookingHandler handles the public intake endpoints: the time slot and
// equipment catalogs, slot availability, request submission, and the
// contact form.
type BookingHandler struct {
	intake *application.IntakeService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(intake *application.IntakeService) *BookingHandler {
	return &BookingHandler{intake: intake}
}

// RegisterRoutes registers all public routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	v1 := r.Group("/api/v1")
	{
		v1.GET("/catalog/time-slots", h.ListTimeSlots)
		v1.GET("/catalog/equipment", h.ListEquipment)
		v1.GET("/availability", h.SlotAvailability)
		v1.POST("/booking-requests", h.SubmitRequest)
		v1.POST("/contact", h.SendContactMessage)
	}
}

// ListTimeSlots handles GET /api/v1/catalog/time-slots.
func (h *BookingHandler) ListTimeSlots(c *gin.Context) {
	response.Success(c, h.intake.TimeSlots())
}

// ListEquipment handles GET /api/v1/catalog/equipment.
func (h *BookingHandler) ListEquipment(c *gin.Context) {
	response.Success(c, h.intake.Equipment())
}

// SlotAvailability handles GET /api/v1/availability?dates=2025-09-02,2025-09-03.
// With no dates selected every slot is reported enabled.
func (h *BookingHandler) SlotAvailability(c *gin.Context) {
	var dates []string
	if raw := c.Query("dates"); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dates = append(dates, d)
			}
		}
	}

	result, err := h.intake.SlotAvailability(dates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SubmitRequest handles POST /api/v1/booking-requests.
func (h *BookingHandler) SubmitRequest(c *gin.Context) {
	var draft booking.SubmissionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, warning, err := h.intake.SubmitRequest(c.Request.Context(), draft)
	if err != nil {
		response.Error(c, err)
		return
	}

	if warning != "" {
		response.CreatedWithWarning(c, result, warning)
		return
	}
	response.Created(c, result)
}

// SendContactMessage handles POST /api/v1/contact.
func (h *BookingHandler) SendContactMessage(c *gin.Context) {
	var msg application.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.intake.SendContactMessage(c.Request.Context(), msg); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "message sent"})
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
