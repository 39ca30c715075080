package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/payments"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/pricing"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/store"
)

type OrdersHandler struct {
	store    OrderStore
	checkout CheckoutClient
	log      *zap.Logger
}

func NewOrdersHandler(orderStore OrderStore, checkout CheckoutClient, log *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		store:    orderStore,
		checkout: checkout,
		log:      log,
	}
}

// CreateOrder runs the checkout pipeline: validate, price, persist,
// create the payment session. Persistence is best-effort: a store
// outage must not block the customer from paying, so the pipeline
// continues with the in-memory order and the failure is logged for
// manual follow-up. A checkout failure, by contrast, aborts the whole
// request.
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if req.Customer.Email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "customer email is required"})
		return
	}
	if err := models.ValidatePhotos(req.Photos); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photos", Message: err.Error()})
		return
	}

	quote, err := pricing.Price(len(req.Photos), pricing.Options{
		CustomBranding: req.Selections.Branding.Type == models.BrandingCustom,
		Voiceover:      req.Selections.Voiceover.Enabled,
		EditedPhotos:   req.Selections.IncludeEditedPhotos,
	})
	if errors.Is(err, pricing.ErrTooManyPhotos) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "photo count exceeds automatic pricing",
			Message: "orders over 35 photos are quoted manually, please contact support",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unable to price order", Message: err.Error()})
		return
	}

	now := time.Now().UTC()
	order := &models.Order{
		OrderID:       models.NewOrderID(now),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Customer:      req.Customer,
		Photos:        req.Photos,
		PhotoCount:    len(req.Photos),
		Selections:    req.Selections,
		Pricing: models.Pricing{
			Package:         quote.Package,
			Base:            quote.Base,
			BrandingFee:     quote.BrandingFee,
			VoiceoverFee:    quote.VoiceoverFee,
			EditedPhotosFee: quote.EditedPhotosFee,
			Total:           quote.Total,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	persisted := true
	if err := h.store.Create(c.Request.Context(), order); err != nil {
		persisted = false
		h.log.Error("order persistence failed, continuing with in-memory order",
			zap.String("order_id", order.OrderID),
			zap.String("stage", "persist"),
			zap.Error(err))
	}

	session, err := h.checkout.CreateSession(c.Request.Context(), order)
	if errors.Is(err, payments.ErrMissingEmail) || errors.Is(err, payments.ErrInvalidAmount) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.log.Error("checkout session creation failed",
			zap.String("order_id", order.OrderID),
			zap.String("stage", "checkout"),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: "checkout could not be created, please try again",
		})
		return
	}

	order.PaymentSessionID = session.ID
	if persisted {
		if err := h.store.SetPaymentSession(c.Request.Context(), order.OrderID, session.ID); err != nil {
			h.log.Error("failed to record payment session on order",
				zap.String("order_id", order.OrderID),
				zap.String("session_id", session.ID),
				zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, models.CheckoutResponse{
		OrderID:          order.OrderID,
		Pricing:          order.Pricing,
		PaymentSessionID: session.ID,
		CheckoutURL:      session.CheckoutURL,
		ClientSecret:     session.ClientSecret,
	})
}

// GetOrder returns the customer-facing view of one order.
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := h.store.FindByOrderID(c.Request.Context(), orderID)
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return
	}
	if err != nil {
		h.log.Error("order lookup failed", zap.String("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found or unavailable"})
		return
	}

	c.JSON(http.StatusOK, models.OrderSummaryResponse{
		OrderID:       order.OrderID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		PhotoCount:    order.PhotoCount,
		Pricing:       order.Pricing,
		DeliveryURL:   order.DeliveryURL,
		CreatedAt:     order.CreatedAt,
	})
}
