package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sendgrid/sendgrid-go"
	"go.uber.org/zap"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/config"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/handlers"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/logger"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/middleware"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/notify"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/payments"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/storage"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// External clients are constructed here and injected; nothing in the
	// pipeline reaches for ambient globals.
	ctx := context.Background()
	orderStore, err := store.NewOrderStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		zapLog.Fatal("failed to initialize order store", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := orderStore.Close(shutdownCtx); err != nil {
			zapLog.Error("failed to close order store", zap.Error(err))
		}
	}()

	uploadClient, err := storage.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		zapLog.Fatal("failed to initialize storage client", zap.Error(err))
	}

	checkoutClient := payments.NewClient(payments.Config{
		SecretKey:  cfg.StripeSecretKey,
		Mode:       payments.Mode(cfg.CheckoutMode),
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
		ReturnURL:  cfg.CheckoutReturnURL,
	})

	notifier := notify.New(sendgrid.NewSendClient(cfg.SendGridAPIKey), notify.Config{
		FromAddress:        cfg.EmailFromAddress,
		FromName:           cfg.EmailFromName,
		ReplyTo:            cfg.EmailReplyTo,
		OperatorEmail:      cfg.OperatorEmail,
		CustomerTemplateID: cfg.CustomerTemplateID,
		OperatorTemplateID: cfg.OperatorTemplateID,
	})

	ordersHandler := handlers.NewOrdersHandler(orderStore, checkoutClient, zapLog)
	uploadHandler := handlers.NewUploadHandler(uploadClient, zapLog)
	webhookHandler := handlers.NewWebhookHandler(orderStore, notifier, handlers.StripeVerifier(cfg.StripeWebhookSecret), zapLog)
	adminHandler := handlers.NewAdminHandler(orderStore, zapLog)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSAllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")

	// Customer-facing pipeline
	api.POST("/uploads", uploadHandler.Upload)
	api.POST("/orders", ordersHandler.CreateOrder)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)

	// Payment confirmation (server-to-server, signature-verified)
	api.POST("/webhooks/stripe", webhookHandler.HandleStripeWebhook)

	// Operator surface
	admin := api.Group("/admin")
	admin.Use(middleware.OperatorAuth(cfg))
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/:order_id", adminHandler.GetOrder)
	admin.PATCH("/orders/:order_id/status", adminHandler.UpdateStatus)
	admin.PATCH("/orders/:order_id/delivery", adminHandler.SetDelivery)

	zapLog.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		zapLog.Fatal("server exited", zap.Error(err))
	}
}
