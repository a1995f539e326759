package admin

import (
	"errors"
	"time"

	handlershared "github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/handlers/shared"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/http/response"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders lists orders across all customers.
func (h *Handler) ListOrders(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListOrdersForAdmin(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": orders}, response.NewPagination(page, pageSize, total))
}

// GetOrder returns any order with items and shipment.
func (h *Handler) GetOrder(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder cancels an order on a customer's behalf, releasing
// reserved stock when the order was still unpaid.
func (h *Handler) CancelOrder(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.OrderService.CancelOrderForAdmin(orderID, adminID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// ShipOrder dispatches a paid order with a tracking number.
func (h *Handler) ShipOrder(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid order id")
		return
	}
	var req struct {
		Method         string       `json:"method" binding:"required"`
		TrackingNumber string       `json:"tracking_number" binding:"required"`
		Cost           models.Money `json:"cost"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	shipment, err := h.ShippingService.ShipOrder(service.ShipOrderInput{
		OrderID:        orderID,
		Method:         req.Method,
		TrackingNumber: req.TrackingNumber,
		Cost:           req.Cost,
		AdminID:        adminID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShipmentInvalid):
			respondError(c, response.CodeBadRequest, "invalid shipment request", nil)
		case errors.Is(err, service.ErrShipmentExists):
			respondError(c, response.CodeConflict, "shipment already exists", nil)
		default:
			respondOrderError(c, err)
		}
		return
	}
	response.Success(c, shipment)
}

// DeliverOrder marks a shipped order as delivered.
func (h *Handler) DeliverOrder(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid order id")
		return
	}
	shipment, err := h.ShippingService.MarkDelivered(orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShipmentNotFound):
			respondError(c, response.CodeNotFound, "shipment not found", nil)
		default:
			respondOrderError(c, err)
		}
		return
	}
	response.Success(c, gin.H{
		"shipment":     shipment,
		"delivered_at": time.Now(),
	})
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "order not found", nil)
	case errors.Is(err, service.ErrOrderStateConflict):
		respondError(c, response.CodeConflict, "order state conflict", nil)
	default:
		respondError(c, response.CodeInternal, "order operation failed", err)
	}
}
