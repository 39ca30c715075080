package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/handlers"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/notify"
)

func sessionEvent(t *testing.T, eventType stripe.EventType, session map[string]interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(session)
	require.NoError(t, err)
	return stripe.Event{
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func staticVerifier(event stripe.Event, err error) handlers.EventVerifier {
	return func(_ []byte, _ string) (stripe.Event, error) {
		return event, err
	}
}

func webhookRouter(st *fakeStore, nt *fakeNotifier, verify handlers.EventVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewWebhookHandler(st, nt, verify, zap.NewNop())
	router := gin.New()
	router.POST("/api/v1/webhooks/stripe", h.HandleStripeWebhook)
	return router
}

func postWebhook(router *gin.Engine) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/api/v1/webhooks/stripe", strings.NewReader("{}"))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func pendingOrder(orderID string) *models.Order {
	return &models.Order{
		OrderID:       orderID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Customer:      models.Customer{Name: "Dana Reyes", Email: "dana@example.com"},
		Photos:        photoList(5),
		PhotoCount:    5,
		Pricing:       models.Pricing{Package: "Essential Listing Video", Base: 5900, Total: 5900},
		CreatedAt:     time.Now().UTC(),
	}
}

func TestWebhook_PaidSessionNotifiesOnce(t *testing.T) {
	st := newFakeStore()
	st.orders["RV-1"] = pendingOrder("RV-1")
	nt := &fakeNotifier{}

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":             "cs_test_hook",
		"payment_status": "paid",
		"metadata":       map[string]string{"order_id": "RV-1"},
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	w := postWebhook(router)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, nt.calls, 1, "exactly one notification pair per confirmation")
	assert.Equal(t, "RV-1", nt.calls[0].order.OrderID)
	assert.Equal(t, models.PaymentStatusPaid, nt.calls[0].order.PaymentStatus)
	assert.Equal(t, 1, st.markPaidCalls)
	assert.Equal(t, models.PaymentStatusPaid, st.orders["RV-1"].PaymentStatus)

	record, ok := st.recorded["RV-1"]
	require.True(t, ok, "notification outcome must be persisted")
	assert.NotNil(t, record.CustomerSentAt)
	assert.NotNil(t, record.OperatorSentAt)
}

func TestWebhook_MarkPaidFailureDefersNotification(t *testing.T) {
	st := newFakeStore()
	st.orders["RV-1"] = pendingOrder("RV-1")
	st.markPaidErr = errors.New("write concern timeout")
	nt := &fakeNotifier{}

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":             "cs_test_hook",
		"payment_status": "paid",
		"metadata":       map[string]string{"order_id": "RV-1"},
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	// The paid mark could not be persisted, so nothing may be sent: an
	// ack here would leave the order pending and a redelivery would
	// notify a second time.
	w := postWebhook(router)
	require.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
	assert.Empty(t, nt.calls, "notifications must wait for the paid mark")
	assert.Empty(t, st.recorded)
	assert.Equal(t, models.PaymentStatusPending, st.orders["RV-1"].PaymentStatus)

	// The store recovers and the processor redelivers: the full
	// sequence runs once.
	st.markPaidErr = nil
	w = postWebhook(router)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, nt.calls, 1, "exactly one notification pair across the retry")
	assert.Equal(t, models.PaymentStatusPaid, st.orders["RV-1"].PaymentStatus)

	record, ok := st.recorded["RV-1"]
	require.True(t, ok)
	assert.NotNil(t, record.CustomerSentAt)
}

func TestWebhook_NotificationFailureRecordedPerRecipient(t *testing.T) {
	st := newFakeStore()
	st.orders["RV-2"] = pendingOrder("RV-2")
	nt := &fakeNotifier{result: notify.Result{CustomerErr: errors.New("mailbox full")}}

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":             "cs_test_hook",
		"payment_status": "paid",
		"metadata":       map[string]string{"order_id": "RV-2"},
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	w := postWebhook(router)

	// A failed email never fails the webhook: payment stands.
	require.Equal(t, http.StatusOK, w.Code)
	record := st.recorded["RV-2"]
	assert.Equal(t, "mailbox full", record.CustomerError)
	assert.Nil(t, record.CustomerSentAt)
	assert.NotNil(t, record.OperatorSentAt)
}

func TestWebhook_UnpaidSessionIgnored(t *testing.T) {
	st := newFakeStore()
	st.orders["RV-3"] = pendingOrder("RV-3")
	nt := &fakeNotifier{}

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":             "cs_test_hook",
		"payment_status": "unpaid",
		"metadata":       map[string]string{"order_id": "RV-3"},
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	w := postWebhook(router)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, nt.calls, "no notification for an unpaid session")
	assert.Zero(t, st.markPaidCalls)
	assert.Equal(t, models.PaymentStatusPending, st.orders["RV-3"].PaymentStatus)
}

func TestWebhook_OtherEventTypesIgnored(t *testing.T) {
	st := newFakeStore()
	nt := &fakeNotifier{}

	event := sessionEvent(t, "checkout.session.expired", map[string]interface{}{
		"id": "cs_test_hook",
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	w := postWebhook(router)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, nt.calls)
}

func TestWebhook_RedeliveryDoesNotRenotify(t *testing.T) {
	st := newFakeStore()
	order := pendingOrder("RV-4")
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentSessionID = "cs_test_hook"
	st.orders["RV-4"] = order
	nt := &fakeNotifier{}

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":             "cs_test_hook",
		"payment_status": "paid",
		"metadata":       map[string]string{"order_id": "RV-4"},
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	w := postWebhook(router)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already processed")
	assert.Empty(t, nt.calls, "redelivered confirmations must not notify again")
	assert.Zero(t, st.markPaidCalls)
}

func TestWebhook_LookupFallsBackToSessionID(t *testing.T) {
	st := newFakeStore()
	order := pendingOrder("RV-5")
	order.PaymentSessionID = "cs_test_hook"
	st.orders["RV-5"] = order
	nt := &fakeNotifier{}

	// Metadata lost in transit; the session id still finds the order.
	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":             "cs_test_hook",
		"payment_status": "paid",
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	w := postWebhook(router)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, nt.calls, 1)
	assert.Equal(t, "RV-5", nt.calls[0].order.OrderID)
}

func TestWebhook_UnknownOrderAckedWithoutNotification(t *testing.T) {
	st := newFakeStore()
	nt := &fakeNotifier{}

	event := sessionEvent(t, stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":             "cs_test_hook",
		"payment_status": "paid",
		"metadata":       map[string]string{"order_id": "RV-missing"},
	})
	router := webhookRouter(st, nt, staticVerifier(event, nil))

	w := postWebhook(router)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, nt.calls)
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	st := newFakeStore()
	nt := &fakeNotifier{}
	router := webhookRouter(st, nt, staticVerifier(stripe.Event{}, errors.New("signature mismatch")))

	w := postWebhook(router)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, nt.calls)
}
