package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CheckoutResponse is returned after a successful order submission.
// Exactly one of CheckoutURL (hosted mode) or ClientSecret (embedded
// mode) is populated.
type CheckoutResponse struct {
	OrderID          string  `json:"order_id"`
	Pricing          Pricing `json:"pricing"`
	PaymentSessionID string  `json:"payment_session_id"`
	CheckoutURL      string  `json:"checkout_url,omitempty"`
	ClientSecret     string  `json:"client_secret,omitempty"`
}

// OrderSummaryResponse is the customer-facing view of an order. It
// deliberately omits operator detail like notification outcomes.
type OrderSummaryResponse struct {
	OrderID       string        `json:"order_id"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PhotoCount    int           `json:"photo_count"`
	Pricing       Pricing       `json:"pricing"`
	DeliveryURL   string        `json:"delivery_url,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

type UploadedAsset struct {
	Filename string `json:"filename"`
	AssetID  string `json:"asset_id"`
	URL      string `json:"url"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Bytes    int    `json:"bytes"`
}

type UploadError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResponse reports per-file outcomes: one failed upload does not
// invalidate the files that made it through.
type UploadResponse struct {
	Assets []UploadedAsset `json:"assets"`
	Errors []UploadError   `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
