package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cha17/gowra-sub000/internal/dto"
	"github.com/Cha17/gowra-sub000/internal/middleware"
	"github.com/Cha17/gowra-sub000/internal/service"
	"github.com/Cha17/gowra-sub000/pkg/response"
)

// AdminHandler handles admin dashboard HTTP requests
type AdminHandler struct {
	adminService service.AdminService
	eventService service.EventService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, eventService service.EventService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		eventService: eventService,
	}
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to load stats"))
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	resp, err := h.adminService.ListUsers(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list users"))
		return
	}

	c.JSON(http.StatusOK, response.Success(resp))
}

// ListEvents handles GET /admin/events
func (h *AdminHandler) ListEvents(c *gin.Context) {
	var query dto.ListEventsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	resp, err := h.eventService.List(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list events"))
		return
	}

	c.JSON(http.StatusOK, response.Success(resp))
}

// ListRegistrations handles GET /admin/registrations
func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid query parameters"))
		return
	}

	resp, err := h.adminService.ListRegistrations(c.Request.Context(), &query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list registrations"))
		return
	}

	c.JSON(http.StatusOK, response.Success(resp))
}

// CreateEvent handles POST /admin/events. The event belongs to the organizer
// named in the request (falling back to the admin's own name) and is not
// linked to a user account.
func (h *AdminHandler) CreateEvent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	organizerName := req.Organizer
	if organizerName == "" {
		organizerName = principal.Name()
	}

	event, err := h.eventService.CreateAsAdmin(c.Request.Context(), organizerName, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, response.BadRequest("Organizer name is required"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to create event"))
		return
	}

	c.JSON(http.StatusCreated, response.Success(gin.H{"event": event}))
}

// UpdateEvent handles PUT /admin/events/:id. Admins bypass the ownership guard.
func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
			return
		}
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"event": event}))
}

// DeleteEvent handles DELETE /admin/events/:id. Admins bypass the ownership guard.
func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to delete event"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Event deleted"}))
}

// OverrideRegistrationStatus handles PUT /admin/registrations/:id/status
func (h *AdminHandler) OverrideRegistrationStatus(c *gin.Context) {
	var req dto.OverrideRegistrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	reg, err := h.adminService.OverrideRegistrationStatus(c.Request.Context(), c.Param("id"), req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Registration not found"))
		case errors.Is(err, service.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, response.BadRequest("Invalid payment status"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to update registration"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"registration": reg}))
}
