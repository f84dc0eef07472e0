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

// RegistrationHandler handles event-registration HTTP requests
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Create handles POST /registrations
func (h *RegistrationHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.User == nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	resp, err := h.registrationService.Register(c.Request.Context(), principal.User.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
		case errors.Is(err, service.ErrEventNotPublished):
			c.JSON(http.StatusBadRequest, response.BadRequest("Event is not open for registration"))
		case errors.Is(err, service.ErrEventOccurred):
			c.JSON(http.StatusBadRequest, response.BadRequest("Event has already occurred"))
		case errors.Is(err, service.ErrRegistrationClosed):
			c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeRegistrationClosed, "Registration deadline has passed"))
		case errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, response.BadRequest("Ticket quantity must be between 1 and 10"))
		case errors.Is(err, service.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeAlreadyRegistered, "Already registered for this event"))
		case errors.Is(err, service.ErrCapacityExceeded):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeCapacityExceeded, "Not enough spots left for this event"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to register"))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(resp))
}

// ListMine handles GET /registrations
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.User == nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	regs, err := h.registrationService.ListMine(c.Request.Context(), principal.User.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to list registrations"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"registrations": regs}))
}

// Cancel handles DELETE /registrations/:id
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.User == nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	err := h.registrationService.Cancel(c.Request.Context(), principal.User.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Registration not found"))
		case errors.Is(err, service.ErrNotRegistrationOwner):
			c.JSON(http.StatusForbidden, response.Forbidden("Registration belongs to another user"))
		case errors.Is(err, service.ErrCancelPaid):
			c.JSON(http.StatusBadRequest, response.BadRequest("Paid registrations cannot be cancelled"))
		case errors.Is(err, service.ErrEventOccurred):
			c.JSON(http.StatusBadRequest, response.BadRequest("Event has already occurred"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to cancel registration"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Registration cancelled"}))
}
