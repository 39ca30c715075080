package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/store"
)

const maxWebhookBody = 64 << 10

// EventVerifier checks a webhook payload's signature and parses it.
type EventVerifier func(payload []byte, sigHeader string) (stripe.Event, error)

// StripeVerifier is the production EventVerifier, bound to the
// endpoint's signing secret.
func StripeVerifier(secret string) EventVerifier {
	return func(payload []byte, sigHeader string) (stripe.Event, error) {
		return webhook.ConstructEvent(payload, sigHeader, secret)
	}
}

type WebhookHandler struct {
	store    OrderStore
	notifier Notifier
	verify   EventVerifier
	log      *zap.Logger
}

func NewWebhookHandler(orderStore OrderStore, notifier Notifier, verify EventVerifier, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		store:    orderStore,
		notifier: notifier,
		verify:   verify,
		log:      log,
	}
}

// HandleStripeWebhook processes payment-confirmation events. Only a
// checkout.session.completed event whose payment_status is "paid"
// marks an order paid; everything else is acknowledged and ignored.
// Notifications run synchronously before the event is acked, and an
// order that is already paid is never re-notified, so redelivered
// events produce at most one notification pair.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read request body"})
		return
	}

	event, err := h.verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid webhook signature"})
		return
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse event", Message: err.Error()})
		return
	}

	// A session being completed is not the same as paid: async payment
	// methods complete with payment_status "unpaid".
	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		h.log.Info("checkout session completed but not paid, ignoring",
			zap.String("session_id", session.ID),
			zap.String("payment_status", string(session.PaymentStatus)))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	ctx := c.Request.Context()
	order, err := h.lookupOrder(ctx, session)
	if err != nil {
		// The order was likely never persisted (best-effort create).
		// Redelivery won't help, so ack and leave a trail for manual
		// reconciliation from the session metadata.
		h.log.Error("no order found for paid session",
			zap.String("session_id", session.ID),
			zap.String("metadata_order_id", session.Metadata["order_id"]),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "order not found"})
		return
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		h.log.Info("duplicate payment confirmation, already processed",
			zap.String("order_id", order.OrderID),
			zap.String("session_id", session.ID))
		c.JSON(http.StatusOK, gin.H{"status": "already processed"})
		return
	}

	// The paid mark is the idempotency claim: acking without it would
	// let a redelivery send a second notification pair. Fail the event
	// instead so the processor retries the whole sequence.
	if err := h.store.MarkPaid(ctx, order.OrderID, session.ID); err != nil {
		h.log.Error("failed to mark order paid",
			zap.String("order_id", order.OrderID),
			zap.String("stage", "mark_paid"),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to record payment"})
		return
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentSessionID = session.ID

	result := h.notifier.NotifyOrderPaid(ctx, order)
	if result.CustomerErr != nil {
		h.log.Error("customer notification failed",
			zap.String("order_id", order.OrderID),
			zap.Error(result.CustomerErr))
	}
	if result.OperatorErr != nil {
		h.log.Error("operator notification failed",
			zap.String("order_id", order.OrderID),
			zap.Error(result.OperatorErr))
	}

	record := result.Record(time.Now().UTC())
	if err := h.store.RecordNotifications(ctx, order.OrderID, record); err != nil {
		h.log.Error("failed to record notification outcome",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebhookHandler) lookupOrder(ctx context.Context, session stripe.CheckoutSession) (*models.Order, error) {
	if orderID := session.Metadata["order_id"]; orderID != "" {
		order, err := h.store.FindByOrderID(ctx, orderID)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, store.ErrOrderNotFound) {
			return nil, err
		}
	}
	return h.store.FindByPaymentSession(ctx, session.ID)
}
