package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "invoicegen/docs" // registers the OpenAPI document
	"invoicegen/internal/handler"
	"invoicegen/internal/middleware"
	"invoicegen/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Workspace     *handler.WorkspaceHandler
	Preview       *handler.PreviewHandler
	Invoice       *handler.InvoiceHandler
	SavedTemplate *handler.SavedTemplateHandler
	Settings      *handler.SettingsHandler
	Usage         *handler.UsageHandler
	Asset         *handler.AssetHandler
	Payment       *handler.PaymentHandler
	OCR           *handler.OCRHandler
	Contact       *handler.ContactHandler
	Health        *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/contact", h.Contact.Send)
	api.POST("/webhooks/stripe", h.Payment.Webhook)

	v1 := api.Group("/v1")
	v1.GET("/templates", h.Workspace.Templates)

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/signin", h.Auth.Signin)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/auth/signout", h.Auth.Signout)
	protected.GET("/auth/me", h.Auth.Me)

	ws := protected.Group("/workspace")
	ws.GET("", h.Workspace.Get)
	ws.GET("/ws", h.Preview.Serve)
	ws.PATCH("/state", h.Workspace.UpdateState)
	ws.POST("/toggle/:element", h.Workspace.ToggleElement)
	ws.POST("/items", h.Workspace.AddItem)
	ws.PATCH("/items/:id", h.Workspace.UpdateItem)
	ws.DELETE("/items/:id", h.Workspace.RemoveItem)
	ws.POST("/custom-fields", h.Workspace.AddCustomField)
	ws.PATCH("/custom-fields/:id", h.Workspace.UpdateCustomField)
	ws.DELETE("/custom-fields/:id", h.Workspace.RemoveCustomField)
	ws.POST("/switch", h.Workspace.Switch)
	ws.POST("/reset", h.Workspace.Reset)

	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.Save)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/export", h.Invoice.Export)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.DELETE("/:id", h.Invoice.Delete)
	invoices.POST("/:id/load", h.Invoice.Load)

	saved := protected.Group("/saved-templates")
	saved.POST("", h.SavedTemplate.Create)
	saved.GET("", h.SavedTemplate.List)
	saved.POST("/:id/apply", h.SavedTemplate.Apply)
	saved.DELETE("/:id", h.SavedTemplate.Delete)

	protected.GET("/settings", h.Settings.Get)
	protected.PUT("/settings", h.Settings.Update)

	protected.GET("/usage", h.Usage.Get)
	protected.POST("/exports/pdf", h.Usage.ExportPDF)
	protected.POST("/assets", h.Asset.Upload)

	payments := protected.Group("/payments")
	payments.POST("/checkout", h.Payment.Checkout)
	payments.GET("/confirm", h.Payment.Confirm)

	protected.POST("/ocr/autofill", h.OCR.Autofill)

	return r
}
