package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpl-maker-lab/service-booking/internal/application"
	"github.com/rpl-maker-lab/service-booking/internal/auth"
	"github.com/rpl-maker-lab/service-booking/internal/config"
	"github.com/rpl-maker-lab/service-booking/internal/middleware"
	"github.com/rpl-maker-lab/service-booking/internal/response"
)

// AdminHandler handles the staff dashboard endpoints: login, request
// review, booking lifecycle management, bulk delete, export, and stats.
type AdminHandler struct {
	lifecycle  *application.LifecycleService
	export     *application.ExportService
	jwtManager *auth.JWTManager
	admin      config.AdminConfig
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	lifecycle *application.LifecycleService,
	export *application.ExportService,
	jwtManager *auth.JWTManager,
	admin config.AdminConfig,
) *AdminHandler {
	return &AdminHandler{
		lifecycle:  lifecycle,
		export:     export,
		jwtManager: jwtManager,
		admin:      admin,
	}
}

// RegisterRoutes registers admin routes. Everything except login sits
// behind the JWT middleware.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	admin.POST("/login", h.Login)

	protected := admin.Group("")
	protected.Use(middleware.Auth(h.jwtManager))
	{
		protected.GET("/requests", h.ListRequests)
		protected.POST("/requests/:id/approve", h.ApproveRequest)
		protected.DELETE("/requests/:id", h.RejectRequest)

		protected.GET("/bookings", h.ListBookings)
		protected.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
		protected.DELETE("/bookings", h.DeleteBookings)

		protected.GET("/bookings/export/xlsx", h.ExportExcel)
		protected.GET("/bookings/export/pdf", h.ExportPDF)

		protected.GET("/stats", h.Stats)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.Email != h.admin.Email ||
		bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.jwtManager.Generate(req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"token": token})
}

// ListRequests handles GET /api/v1/admin/requests.
func (h *AdminHandler) ListRequests(c *gin.Context) {
	page, limit := parsePagination(c)

	items, total, err := h.lifecycle.ListRequests(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, items, total, page, limit)
}

// ApproveRequest handles POST /api/v1/admin/requests/:id/approve.
func (h *AdminHandler) ApproveRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request ID")
		return
	}

	result, err := h.lifecycle.Promote(c.Request.Context(), requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RejectRequest handles DELETE /api/v1/admin/requests/:id.
func (h *AdminHandler) RejectRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid request ID")
		return
	}

	warning, err := h.lifecycle.Reject(c.Request.Context(), requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if warning != "" {
		response.SuccessWithWarning(c, gin.H{"deleted": true}, warning)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListBookings handles GET /api/v1/admin/bookings?status=scheduled.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	items, total, err := h.lifecycle.ListBookings(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, items, total, page, limit)
}

// UpdateBookingStatus handles PATCH /api/v1/admin/bookings/:id/status.
func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var req application.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, warning, err := h.lifecycle.ApplyTransition(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if warning != "" {
		response.SuccessWithWarning(c, result, warning)
		return
	}
	response.Success(c, result)
}

type deleteBookingsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// DeleteBookings handles DELETE /api/v1/admin/bookings.
func (h *AdminHandler) DeleteBookings(c *gin.Context) {
	var req deleteBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.lifecycle.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": deleted})
}

// ExportExcel handles GET /api/v1/admin/bookings/export/xlsx.
func (h *AdminHandler) ExportExcel(c *gin.Context) {
	data, filename, err := h.export.ExportExcel(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportPDF handles GET /api/v1/admin/bookings/export/pdf.
func (h *AdminHandler) ExportPDF(c *gin.Context) {
	data, filename, err := h.export.ExportPDF(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.lifecycle.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
