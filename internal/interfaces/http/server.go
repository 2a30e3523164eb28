// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application
// service calls; the public share pages render HTML, everything else is JSON.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smallbiz/backoffice/internal/application/service"
	"github.com/smallbiz/backoffice/internal/export"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// TemplateGlob locates the share-page templates, e.g. "templates/*.html".
	TemplateGlob string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		TemplateGlob: "templates/*.html",
	}
}

// Server is the HTTP server adapter
type Server struct {
	config         ServerConfig
	httpServer     *http.Server
	router         *gin.Engine
	contactService service.ContactService
	itemService    service.ItemService
	invoiceService service.InvoiceService
	paymentService service.PaymentService
	archiveService service.ArchiveService
	excelWriter    *export.ExcelWriter
	pdfWriter      *export.PDFWriter
	logger         Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	contactService service.ContactService,
	itemService service.ItemService,
	invoiceService service.InvoiceService,
	paymentService service.PaymentService,
	archiveService service.ArchiveService,
	excelWriter *export.ExcelWriter,
	pdfWriter *export.PDFWriter,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.LoadHTMLGlob(config.TemplateGlob)

	server := &Server{
		config:         config,
		router:         router,
		contactService: contactService,
		itemService:    itemService,
		invoiceService: invoiceService,
		paymentService: paymentService,
		archiveService: archiveService,
		excelWriter:    excelWriter,
		pdfWriter:      pdfWriter,
		logger:         logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(corsMiddleware())
	s.router.Use(s.loggingMiddleware())
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags every request so log lines can be correlated
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"request_id", c.GetString("request_id"),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(
		s.contactService, s.itemService, s.invoiceService,
		s.paymentService, s.archiveService,
		s.excelWriter, s.pdfWriter, s.logger,
	)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// Public share pages, no auth
	s.router.GET("/share/invoice/:token", handlers.SharedInvoicePage)
	s.router.GET("/share/invoice/:token/pdf", handlers.SharedInvoicePDF)

	// API routes
	api := s.router.Group("/api")
	{
		// Contacts and their addresses
		api.POST("/contacts", handlers.CreateContact)
		api.GET("/contacts", handlers.ListContacts)
		api.GET("/contacts/:id", handlers.GetContact)
		api.PUT("/contacts/:id", handlers.UpdateContact)
		api.POST("/contacts/:id/archive", handlers.ArchiveContact)
		api.POST("/contacts/:id/restore", handlers.RestoreContact)
		api.DELETE("/contacts/:id", handlers.DeleteContact)
		api.POST("/contacts/:id/addresses", handlers.AddAddress)
		api.PUT("/contacts/:id/addresses/:addressId", handlers.UpdateAddress)
		api.DELETE("/contacts/:id/addresses/:addressId", handlers.DeleteAddress)

		// Items
		api.POST("/items", handlers.CreateItem)
		api.GET("/items", handlers.ListItems)
		api.GET("/items/:id", handlers.GetItem)
		api.PUT("/items/:id", handlers.UpdateItem)
		api.POST("/items/:id/archive", handlers.ArchiveItem)
		api.POST("/items/:id/restore", handlers.RestoreItem)
		api.DELETE("/items/:id", handlers.DeleteItem)

		// Invoices. The export route must be registered before the
		// parameterized detail route would otherwise swallow it.
		api.POST("/invoices", handlers.CreateInvoice)
		api.GET("/invoices", handlers.ListInvoices)
		api.GET("/invoices/export", handlers.ExportInvoices)
		api.GET("/invoices/:id", handlers.GetInvoice)
		api.PUT("/invoices/:id", handlers.UpdateInvoice)
		api.POST("/invoices/:id/archive", handlers.ArchiveInvoice)
		api.POST("/invoices/:id/restore", handlers.RestoreInvoice)
		api.DELETE("/invoices/:id", handlers.DeleteInvoice)

		// Payments
		api.POST("/payments", handlers.CreatePayment)
		api.GET("/payments", handlers.ListPayments)
		api.GET("/payments/:id", handlers.GetPayment)
		api.PUT("/payments/:id", handlers.UpdatePayment)
		api.POST("/payments/:id/archive", handlers.ArchivePayment)
		api.POST("/payments/:id/restore", handlers.RestorePayment)
		api.DELETE("/payments/:id", handlers.DeletePayment)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
