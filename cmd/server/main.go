package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"invoicegen/internal/config"
	"invoicegen/internal/email/noop"
	"invoicegen/internal/email/ses"
	"invoicegen/internal/handler"
	"invoicegen/internal/logger"
	"invoicegen/internal/ocr/documentai"
	"invoicegen/internal/ocr/vision"
	"invoicegen/internal/payment/stripe"
	"invoicegen/internal/pdf"
	"invoicegen/internal/port"
	"invoicegen/internal/repository/postgres"
	"invoicegen/internal/router"
	"invoicegen/internal/service"
	s3storage "invoicegen/internal/storage/s3"
)

// @title                      invoicegen API
// @version                    1.0
// @description                Multi-template invoice editor with live preview, PDF export and saved invoices.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	if strings.EqualFold(cfg.Server.Environment, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(context.Background(), &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	savedTemplateRepo := postgres.NewSavedTemplateRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)
	usageRepo := postgres.NewUsageRepo(db)
	subscriptionRepo := postgres.NewSubscriptionRepo(db)
	workspaceRepo := postgres.NewWorkspaceRepo(db)

	// Optional infrastructure
	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		bucket, err := s3storage.New(context.Background(), &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		storage = bucket
	}

	emailSender, err := newEmailSender(cfg)
	if err != nil {
		return err
	}

	// Services
	hub := service.NewPreviewHub()
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	passwordResetSvc := service.NewPasswordResetService(userRepo, emailSender, cfg.JWT, cfg.Frontend.URL)
	workspaceSvc := service.NewWorkspaceService(workspaceRepo, settingsRepo, hub)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, workspaceSvc)
	savedTemplateSvc := service.NewSavedTemplateService(savedTemplateRepo, workspaceSvc)
	settingsSvc := service.NewSettingsService(settingsRepo)
	usageSvc := service.NewUsageService(userRepo, usageRepo, cfg.FreeTier)
	exportSvc := service.NewExportService(workspaceSvc, usageSvc, pdf.NewRenderer(), storage)
	contactSvc := service.NewContactService(emailSender)

	var assetSvc service.AssetService
	if storage != nil {
		assetSvc = service.NewAssetService(storage, &cfg.S3)
	}

	var paymentSvc service.PaymentService
	if cfg.Stripe.Enabled() {
		paymentSvc = service.NewPaymentService(
			stripe.NewProvider(cfg.Stripe), userRepo, subscriptionRepo, cfg.Stripe, cfg.Frontend.URL,
		)
	}

	var ocrSvc service.OCRService
	if cfg.OCR.Enabled {
		extractor, closeExtractor, err := newTextExtractor(context.Background(), cfg.OCR)
		if err != nil {
			return err
		}
		defer closeExtractor()
		ocrSvc = service.NewOCRService(extractor, workspaceSvc, cfg.OCR.MaxFileSizeMB)
	}

	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, passwordResetSvc),
		Workspace:     handler.NewWorkspaceHandler(workspaceSvc),
		Preview:       handler.NewPreviewHandler(workspaceSvc, hub, cfg.CORS.AllowedOrigins),
		Invoice:       handler.NewInvoiceHandler(invoiceSvc),
		SavedTemplate: handler.NewSavedTemplateHandler(savedTemplateSvc),
		Settings:      handler.NewSettingsHandler(settingsSvc),
		Usage:         handler.NewUsageHandler(usageSvc, exportSvc),
		Asset:         handler.NewAssetHandler(assetSvc),
		Payment:       handler.NewPaymentHandler(paymentSvc),
		OCR:           handler.NewOCRHandler(ocrSvc),
		Contact:       handler.NewContactHandler(contactSvc),
		Health:        handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Port).
			Bool("s3", storage != nil).
			Bool("payments", paymentSvc != nil).
			Bool("ocr", ocrSvc != nil).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newTextExtractor(ctx context.Context, cfg config.OCRConfig) (port.TextExtractor, func() error, error) {
	switch cfg.Provider {
	case "", "vision":
		e, err := vision.NewExtractor(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize Vision client: %w", err)
		}
		return e, e.Close, nil
	case "documentai":
		e, err := documentai.NewExtractor(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize Document AI client: %w", err)
		}
		return e, e.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown ocr provider %q", cfg.Provider)
	}
}

func newEmailSender(cfg *config.Config) (port.EmailSender, error) {
	switch strings.ToLower(cfg.Email.Provider) {
	case "ses":
		sender, err := ses.NewSender(context.Background(), cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "", "noop":
		return noop.NewSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
