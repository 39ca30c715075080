// Package payments builds Stripe checkout sessions for priced orders.
// One attempt per request, no retry: a provider failure surfaces as a
// generic checkout error and the customer resubmits.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
)

var (
	ErrMissingEmail   = errors.New("payments: customer email is required")
	ErrInvalidAmount  = errors.New("payments: order total must be positive")
	ErrCheckoutFailed = errors.New("payments: checkout session could not be created")
)

const currency = "usd"

// Mode selects the Stripe integration style.
type Mode string

const (
	ModeHosted   Mode = "hosted"   // redirect to a Stripe-hosted page
	ModeEmbedded Mode = "embedded" // embedded form, client secret returned
)

// Session is the opaque checkout handle returned to the frontend plus
// the session id persisted on the order for webhook reconciliation.
type Session struct {
	ID           string
	CheckoutURL  string
	ClientSecret string
}

type Config struct {
	SecretKey  string
	Mode       Mode
	SuccessURL string
	CancelURL  string
	ReturnURL  string
}

type Client struct {
	api *client.API
	cfg Config
}

// NewClient constructs a dedicated Stripe API client. The key lives on
// this instance, not in the SDK's package-level state.
func NewClient(cfg Config) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &Client{api: api, cfg: cfg}
}

// CreateSession builds a single-line-item checkout session for a priced
// order. Required fields are rejected before Stripe is contacted.
func (c *Client) CreateSession(ctx context.Context, order *models.Order) (*Session, error) {
	if order.Customer.Email == "" {
		return nil, ErrMissingEmail
	}
	if order.Pricing.Total <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(order.Customer.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(order.Pricing.Total),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(order.Pricing.Package),
						Description: stripe.String(fmt.Sprintf("Listing video from %d photos", order.PhotoCount)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	switch c.cfg.Mode {
	case ModeEmbedded:
		params.UIMode = stripe.String(string(stripe.CheckoutSessionUIModeEmbedded))
		params.ReturnURL = stripe.String(c.cfg.ReturnURL)
	default:
		params.SuccessURL = stripe.String(c.cfg.SuccessURL)
		params.CancelURL = stripe.String(c.cfg.CancelURL)
	}

	for k, v := range SessionMetadata(order) {
		params.AddMetadata(k, v)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	return &Session{
		ID:           sess.ID,
		CheckoutURL:  sess.URL,
		ClientSecret: sess.ClientSecret,
	}, nil
}
