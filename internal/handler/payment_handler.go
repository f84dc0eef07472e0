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

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Process handles POST /payments/process
func (h *PaymentHandler) Process(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.User == nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return
	}

	resp, err := h.paymentService.Process(c.Request.Context(), principal.User.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Registration not found"))
		case errors.Is(err, service.ErrNotPaymentOwner):
			c.JSON(http.StatusForbidden, response.Forbidden("Registration belongs to another user"))
		case errors.Is(err, service.ErrAlreadyPaid):
			c.JSON(http.StatusConflict, response.Error(response.ErrCodeAlreadyPaid, "Registration is already paid"))
		case errors.Is(err, service.ErrEventOccurred):
			c.JSON(http.StatusBadRequest, response.BadRequest("Event has already occurred"))
		case errors.Is(err, service.ErrAmountNotPositive):
			c.JSON(http.StatusBadRequest, response.BadRequest("Registration has no amount due"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to process payment"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(resp))
}

// Refund handles POST /payments/:id/refund (admin only)
func (h *PaymentHandler) Refund(c *gin.Context) {
	refund, err := h.paymentService.Refund(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Payment not found"))
		case errors.Is(err, service.ErrPaymentNotRefund):
			c.JSON(http.StatusBadRequest, response.BadRequest("Only paid payments can be refunded"))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError("Failed to refund payment"))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(refund))
}

// History handles GET /payments/history
func (h *PaymentHandler) History(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok || principal.User == nil {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	payments, err := h.paymentService.History(c.Request.Context(), principal.User.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError("Failed to load payment history"))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"payments": payments}))
}
