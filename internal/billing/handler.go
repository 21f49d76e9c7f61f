package billing

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateInvoice godoc
// @Summary      Create invoice
// @Description  Opens a pending invoice for a member. Admin only.
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateInvoiceRequest  true  "Invoice data"
// @Success      201      {object}  Invoice
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/invoices [post]
func (h *Handler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.service.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// RecordPayment godoc
// @Summary      Record payment
// @Description  Records a payment against an invoice and publishes a settlement event. Admin only.
// @Tags         billing
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        invoiceID  path      int                   true  "Invoice ID"
// @Param        request    body      RecordPaymentRequest  true  "Payment data"
// @Success      201        {object}  Payment
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Router       /admin/invoices/{invoiceID}/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	invoiceID, err := strconv.Atoi(c.Param("invoiceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice ID"})
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.service.RecordPayment(c.Request.Context(), invoiceID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, ErrInvoiceAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice already paid"})
		case errors.Is(err, ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable, try again later"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// ListMyInvoices godoc
// @Summary      List my invoices
// @Description  Returns the authenticated member's invoices, newest first.
// @Tags         billing
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Invoice
// @Failure      500  {object}  gin.H
// @Router       /my/invoices [get]
func (h *Handler) ListMyInvoices(c *gin.Context) {
	memberID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invoices, err := h.service.ListInvoicesByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	if invoices == nil {
		invoices = []Invoice{}
	}

	c.JSON(http.StatusOK, invoices)
}
