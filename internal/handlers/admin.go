package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/store"
)

// AdminHandler is the operator surface: full order detail, manual
// lifecycle transitions and delivery-link publishing. Payment status is
// never touched here, only the webhook moves it.
type AdminHandler struct {
	store OrderStore
	log   *zap.Logger
}

func NewAdminHandler(orderStore OrderStore, log *zap.Logger) *AdminHandler {
	return &AdminHandler{store: orderStore, log: log}
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	orders, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: orders})
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.store.FindByOrderID(c.Request.Context(), orderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return
	}
	if err != nil {
		h.log.Error("order lookup failed", zap.String("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "order unavailable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.store.UpdateStatus(c.Request.Context(), orderID, status); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		h.log.Error("failed to update order status",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "status": status})
}

// SetDelivery records the finished video's URL and completes the order.
func (h *AdminHandler) SetDelivery(c *gin.Context) {
	orderID := c.Param("order_id")

	var req models.SetDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if err := h.store.SetDeliveryURL(c.Request.Context(), orderID, req.DeliveryURL); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			return
		}
		h.log.Error("failed to set delivery url",
			zap.String("order_id", orderID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "delivery_url": req.DeliveryURL})
}
