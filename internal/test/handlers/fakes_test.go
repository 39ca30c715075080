package handlers_test

import (
	"context"
	"io"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/notify"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/payments"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/storage"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/store"
)

type fakeStore struct {
	orders        map[string]*models.Order
	createErr     error
	created       []*models.Order
	sessions      map[string]string
	markPaidCalls int
	markPaidErr   error
	recorded      map[string]models.Notifications
	statusUpdates map[string]models.OrderStatus
	deliveries    map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:        map[string]*models.Order{},
		sessions:      map[string]string{},
		recorded:      map[string]models.Notifications{},
		statusUpdates: map[string]models.OrderStatus{},
		deliveries:    map[string]string{},
	}
}

func (f *fakeStore) Create(_ context.Context, order *models.Order) error {
	f.created = append(f.created, order)
	if f.createErr != nil {
		return f.createErr
	}
	cp := *order
	f.orders[order.OrderID] = &cp
	return nil
}

func (f *fakeStore) FindByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeStore) FindByPaymentSession(_ context.Context, sessionID string) (*models.Order, error) {
	for _, order := range f.orders {
		if order.PaymentSessionID == sessionID {
			cp := *order
			return &cp, nil
		}
	}
	return nil, store.ErrOrderNotFound
}

func (f *fakeStore) List(_ context.Context, _ int64) ([]models.Order, error) {
	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStore) SetPaymentSession(_ context.Context, orderID, sessionID string) error {
	f.sessions[orderID] = sessionID
	if order, ok := f.orders[orderID]; ok {
		order.PaymentSessionID = sessionID
	}
	return nil
}

func (f *fakeStore) MarkPaid(_ context.Context, orderID, sessionID string) error {
	f.markPaidCalls++
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return store.ErrOrderNotFound
	}
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentSessionID = sessionID
	return nil
}

func (f *fakeStore) RecordNotifications(_ context.Context, orderID string, n models.Notifications) error {
	f.recorded[orderID] = n
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, orderID string, status models.OrderStatus) error {
	if _, ok := f.orders[orderID]; !ok {
		return store.ErrOrderNotFound
	}
	f.statusUpdates[orderID] = status
	f.orders[orderID].Status = status
	return nil
}

func (f *fakeStore) SetDeliveryURL(_ context.Context, orderID, deliveryURL string) error {
	if _, ok := f.orders[orderID]; !ok {
		return store.ErrOrderNotFound
	}
	f.deliveries[orderID] = deliveryURL
	return nil
}

type fakeCheckout struct {
	calls   int
	lastOrd *models.Order
	session *payments.Session
	err     error
}

func (f *fakeCheckout) CreateSession(_ context.Context, order *models.Order) (*payments.Session, error) {
	f.calls++
	f.lastOrd = order
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type notifyCall struct {
	order *models.Order
}

type fakeNotifier struct {
	calls  []notifyCall
	result notify.Result
}

func (f *fakeNotifier) NotifyOrderPaid(_ context.Context, order *models.Order) notify.Result {
	f.calls = append(f.calls, notifyCall{order: order})
	return f.result
}

type fakeUploader struct {
	failOn map[string]bool
}

func (f *fakeUploader) Upload(_ context.Context, _ storage.AssetKind, filename string, r io.Reader) (*storage.Asset, error) {
	if f.failOn[filename] {
		return nil, io.ErrUnexpectedEOF
	}
	data, _ := io.ReadAll(r)
	return &storage.Asset{
		AssetID: "asset-" + filename,
		URL:     "https://cdn.example.com/" + filename,
		Width:   1920,
		Height:  1080,
		Bytes:   len(data),
	}, nil
}
