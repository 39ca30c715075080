package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus tracks the payment-processor side of an order,
// independent of the fulfillment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderStatus is the fulfillment lifecycle, advanced manually by an
// operator after payment.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus maps a request string to a known lifecycle status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusCompleted:
		return OrderStatusCompleted, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", fmt.Errorf("unsupported order status %q", s)
	}
}

type BrandingType string

const (
	BrandingNone   BrandingType = "none"
	BrandingBasic  BrandingType = "basic"
	BrandingCustom BrandingType = "custom"
)

type Customer struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Photo is one uploaded listing photo. Position determines the photo's
// place in the final video and must be unique and contiguous within an
// order.
type Photo struct {
	AssetID  string `bson:"asset_id" json:"asset_id"`
	URL      string `bson:"url" json:"url"`
	Position int    `bson:"position" json:"position"`
}

type Branding struct {
	Type        BrandingType `bson:"type" json:"type"`
	LogoURL     string       `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	AgentName   string       `bson:"agent_name,omitempty" json:"agent_name,omitempty"`
	CompanyName string       `bson:"company_name,omitempty" json:"company_name,omitempty"`
	Phone       string       `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string       `bson:"email,omitempty" json:"email,omitempty"`
	Website     string       `bson:"website,omitempty" json:"website,omitempty"`
}

type Voiceover struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Script  string `bson:"script,omitempty" json:"script,omitempty"`
	Voice   string `bson:"voice,omitempty" json:"voice,omitempty"`
}

type Selections struct {
	Music               string    `bson:"music,omitempty" json:"music,omitempty"`
	CustomAudioURL      string    `bson:"custom_audio_url,omitempty" json:"custom_audio_url,omitempty"`
	Branding            Branding  `bson:"branding" json:"branding"`
	Voiceover           Voiceover `bson:"voiceover" json:"voiceover"`
	IncludeEditedPhotos bool      `bson:"include_edited_photos" json:"include_edited_photos"`
	SpecialInstructions string    `bson:"special_instructions,omitempty" json:"special_instructions,omitempty"`
}

// Pricing holds the priced breakdown in minor currency units (cents).
// Total always equals Base + BrandingFee + VoiceoverFee + EditedPhotosFee.
type Pricing struct {
	Package         string `bson:"package" json:"package"`
	Base            int64  `bson:"base" json:"base"`
	BrandingFee     int64  `bson:"branding_fee" json:"branding_fee"`
	VoiceoverFee    int64  `bson:"voiceover_fee" json:"voiceover_fee"`
	EditedPhotosFee int64  `bson:"edited_photos_fee" json:"edited_photos_fee"`
	Total           int64  `bson:"total" json:"total"`
}

// Notifications records the outcome of the two post-payment emails.
// An empty error string with a zero timestamp means no attempt was made.
type Notifications struct {
	CustomerSentAt *time.Time `bson:"customer_sent_at,omitempty" json:"customer_sent_at,omitempty"`
	CustomerError  string     `bson:"customer_error,omitempty" json:"customer_error,omitempty"`
	OperatorSentAt *time.Time `bson:"operator_sent_at,omitempty" json:"operator_sent_at,omitempty"`
	OperatorError  string     `bson:"operator_error,omitempty" json:"operator_error,omitempty"`
}

// Order is the central entity: one video request with its photos,
// selections and price. OrderID is the human-readable code customers
// and operators reference; the Mongo ObjectID stays internal.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID          string             `bson:"order_id" json:"order_id"`
	Status           OrderStatus        `bson:"status" json:"status"`
	PaymentStatus    PaymentStatus      `bson:"payment_status" json:"payment_status"`
	Customer         Customer           `bson:"customer" json:"customer"`
	Photos           []Photo            `bson:"photos" json:"photos"`
	PhotoCount       int                `bson:"photo_count" json:"photo_count"`
	Selections       Selections         `bson:"selections" json:"selections"`
	Pricing          Pricing            `bson:"pricing" json:"pricing"`
	PaymentSessionID string             `bson:"payment_session_id,omitempty" json:"payment_session_id,omitempty"`
	DeliveryURL      string             `bson:"delivery_url,omitempty" json:"delivery_url,omitempty"`
	Notifications    Notifications      `bson:"notifications" json:"notifications"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewOrderID generates the human-readable order code, e.g.
// RV-20250901154210-3F8A. Timestamp first so codes sort by creation.
func NewOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("RV-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

// ValidatePhotos checks that at least one photo is present and that
// positions are unique and contiguous starting at zero.
func ValidatePhotos(photos []Photo) error {
	if len(photos) == 0 {
		return fmt.Errorf("at least one photo is required")
	}
	seen := make(map[int]bool, len(photos))
	for _, p := range photos {
		if p.URL == "" {
			return fmt.Errorf("photo at position %d has no url", p.Position)
		}
		if p.Position < 0 || p.Position >= len(photos) {
			return fmt.Errorf("photo position %d out of range", p.Position)
		}
		if seen[p.Position] {
			return fmt.Errorf("duplicate photo position %d", p.Position)
		}
		seen[p.Position] = true
	}
	return nil
}
