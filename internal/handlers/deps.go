package handlers

import (
	"context"
	"io"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/notify"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/payments"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/storage"
)

// OrderStore is the slice of the Mongo store the handlers consume.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	FindByPaymentSession(ctx context.Context, sessionID string) (*models.Order, error)
	List(ctx context.Context, limit int64) ([]models.Order, error)
	SetPaymentSession(ctx context.Context, orderID, sessionID string) error
	MarkPaid(ctx context.Context, orderID, sessionID string) error
	RecordNotifications(ctx context.Context, orderID string, n models.Notifications) error
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	SetDeliveryURL(ctx context.Context, orderID, deliveryURL string) error
}

type CheckoutClient interface {
	CreateSession(ctx context.Context, order *models.Order) (*payments.Session, error)
}

type Notifier interface {
	NotifyOrderPaid(ctx context.Context, order *models.Order) notify.Result
}

type Uploader interface {
	Upload(ctx context.Context, kind storage.AssetKind, filename string, r io.Reader) (*storage.Asset, error)
}
