// Package store persists orders in MongoDB. The orders collection is
// keyed by the generated human-readable order_id; the store is treated
// as a simple key-value-with-patch resource, no transactions.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
)

var ErrOrderNotFound = errors.New("store: order not found")

const ordersCollection = "orders"

type OrderStore struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewOrderStore(ctx context.Context, uri, database string) (*OrderStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &OrderStore{
		client:   client,
		database: client.Database(database),
	}

	// order_id is the lookup key for everything downstream of creation.
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.orders().Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("failed to ensure order_id index: %w", err)
	}

	return s, nil
}

func (s *OrderStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *OrderStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *OrderStore) orders() *mongo.Collection {
	return s.database.Collection(ordersCollection)
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	if _, err := s.orders().InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
	}
	return nil
}

func (s *OrderStore) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.orders().FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}
	return &order, nil
}

func (s *OrderStore) FindByPaymentSession(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := s.orders().FindOne(ctx, bson.M{"payment_session_id": sessionID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order for session %s: %w", sessionID, err)
	}
	return &order, nil
}

// List returns orders newest first, for the operator dashboard.
func (s *OrderStore) List(ctx context.Context, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := s.orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) patch(ctx context.Context, orderID string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.orders().UpdateOne(ctx, bson.M{"order_id": orderID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderStore) SetPaymentSession(ctx context.Context, orderID, sessionID string) error {
	return s.patch(ctx, orderID, bson.M{"payment_session_id": sessionID})
}

func (s *OrderStore) MarkPaid(ctx context.Context, orderID, sessionID string) error {
	return s.patch(ctx, orderID, bson.M{
		"payment_status":     models.PaymentStatusPaid,
		"payment_session_id": sessionID,
	})
}

func (s *OrderStore) RecordNotifications(ctx context.Context, orderID string, n models.Notifications) error {
	return s.patch(ctx, orderID, bson.M{"notifications": n})
}

func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	return s.patch(ctx, orderID, bson.M{"status": status})
}

func (s *OrderStore) SetDeliveryURL(ctx context.Context, orderID, deliveryURL string) error {
	return s.patch(ctx, orderID, bson.M{
		"delivery_url": deliveryURL,
		"status":       models.OrderStatusCompleted,
	})
}
