package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutMode        string // "hosted" or "embedded"
	CheckoutSuccessURL  string
	CheckoutCancelURL   string
	CheckoutReturnURL   string

	// Cloudinary
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// SendGrid
	SendGridAPIKey     string
	EmailFromAddress   string
	EmailFromName      string
	EmailReplyTo       string
	OperatorEmail      string
	CustomerTemplateID string
	OperatorTemplateID string

	// Admin
	AdminJWTSecret string

	// Server
	Port             string
	Environment      string
	BaseURL          string
	CORSAllowOrigins string
}

func Load() (*Config, error) {
	// Local development only; in production the variables come from the platform.
	_ = godotenv.Load()

	cfg := &Config{
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		CheckoutMode:        getEnv("CHECKOUT_MODE", "hosted"),
		CheckoutSuccessURL:  getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/order/success"),
		CheckoutCancelURL:   getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/order/cancelled"),
		CheckoutReturnURL:   getEnv("CHECKOUT_RETURN_URL", "http://localhost:3000/order/return"),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "listing-orders"),

		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "listing_videos"),

		SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
		EmailFromAddress:   getEnv("EMAIL_FROM_ADDRESS", ""),
		EmailFromName:      getEnv("EMAIL_FROM_NAME", "Listing Reels"),
		EmailReplyTo:       getEnv("EMAIL_REPLY_TO", ""),
		OperatorEmail:      getEnv("OPERATOR_EMAIL", ""),
		CustomerTemplateID: getEnv("SENDGRID_CUSTOMER_TEMPLATE_ID", ""),
		OperatorTemplateID: getEnv("SENDGRID_OPERATOR_TEMPLATE_ID", ""),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:8080"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if c.CheckoutMode != "hosted" && c.CheckoutMode != "embedded" {
		return fmt.Errorf("CHECKOUT_MODE must be \"hosted\" or \"embedded\", got %q", c.CheckoutMode)
	}
	if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
		return fmt.Errorf("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is required")
	}
	if c.OperatorEmail == "" {
		return fmt.Errorf("OPERATOR_EMAIL is required")
	}
	if c.AdminJWTSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
