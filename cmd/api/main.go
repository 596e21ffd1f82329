package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/agent"
	"github.com/arthamitra/arthamitra-backend/internal/agent/tools"
	"github.com/arthamitra/arthamitra-backend/internal/brainstorm"
	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/arthamitra/arthamitra-backend/internal/config"
	"github.com/arthamitra/arthamitra-backend/internal/docintel"
	"github.com/arthamitra/arthamitra-backend/internal/extract"
	"github.com/arthamitra/arthamitra-backend/internal/gov"
	"github.com/arthamitra/arthamitra-backend/internal/handler"
	"github.com/arthamitra/arthamitra-backend/internal/knowledge"
	"github.com/arthamitra/arthamitra-backend/internal/llm"
	"github.com/arthamitra/arthamitra-backend/internal/middleware"
	"github.com/arthamitra/arthamitra-backend/internal/repository/sqlite"
	"github.com/arthamitra/arthamitra-backend/internal/repository/storage"
	"github.com/arthamitra/arthamitra-backend/internal/search"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to create data directory")
	}

	// Open the three SQLite stores
	ledgerStore, err := sqlite.OpenLedger(cfg.LedgerDBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open ledger store")
	}
	defer ledgerStore.Close()

	planningStore, err := sqlite.OpenPlanning(cfg.PlanningDBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open planning store")
	}
	defer planningStore.Close()

	docsStore, err := sqlite.OpenDocs(cfg.DocsDBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open docs store")
	}
	defer docsStore.Close()

	log.Info().Str("data_dir", cfg.DataDir).Msg("Stores opened")

	// LLM gateway: providers are tried in order until one is configured
	gateway := llm.NewGateway(
		llm.NewSarvam(cfg.SarvamAPIKey, cfg.SarvamModel),
		llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel),
	)
	if !gateway.IsConfigured() {
		log.Warn().Msg("No LLM provider configured; agent replies will be deterministic fallbacks")
	}

	// Knowledge base with live corpus reload
	kb, err := knowledge.NewService(cfg.KnowledgeDir, cfg.KnowledgeFTSPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open knowledge base")
	}
	defer kb.Close()

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := kb.Watch(watchCtx); err != nil && watchCtx.Err() == nil {
			log.Warn().Err(err).Msg("Knowledge watcher stopped")
		}
	}()

	// External collaborators; each degrades to unconfigured
	searchClient, err := search.NewClient(cfg.SerpAPIKey, cfg.SerpBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create search client")
	}
	govClient := gov.NewClient(cfg.GovAPIKey, cfg.GovBaseURL)
	docintelClient := docintel.NewClient(cfg.DocIntelAPIKey, cfg.DocIntelURL)

	// Object storage for receipt and statement archival
	var objects storage.ObjectRepository
	switch cfg.StorageProvider {
	case "s3":
		objects, err = storage.NewS3ObjectRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 object repository")
		}
	case "minio":
		objects, err = storage.NewMinIOObjectRepository(cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create MinIO object repository")
		}
	default:
		objects = &storage.NoOpObjectRepository{}
	}
	log.Info().Str("provider", cfg.StorageProvider).Msg("Object storage ready")

	// WebSocket hub doubles as the event publisher for services
	hub := websocket.NewHub()

	// Services
	categorizer := categorize.NewCategorizer(planningStore, llm.NewCategorizer(gateway))
	transactionService := service.NewTransactionService(ledgerStore, planningStore, hub)
	budgetService := service.NewBudgetService(planningStore, hub)
	goalService := service.NewGoalService(planningStore, hub)
	paymentService := service.NewPaymentService(planningStore, transactionService, hub)
	merchantRuleService := service.NewMerchantRuleService(planningStore)
	analyticsService := service.NewAnalyticsService(ledgerStore, planningStore, planningStore, planningStore)
	milestoneService := service.NewMilestoneService(docsStore, hub)
	dashboardService := service.NewDashboardService(transactionService, budgetService, goalService, paymentService, milestoneService)
	billingService := service.NewBillingService(planningStore)
	billSplitService := service.NewBillSplitService(planningStore, hub)
	businessService := service.NewBusinessService(docsStore, gateway)
	brainstormService := brainstorm.NewService(gateway)
	receiptService := service.NewReceiptService(llm.NewVision(gateway), categorizer, transactionService, objects)
	statementService := service.NewStatementService(extract.NewPDFExtractor(docintelClient), categorizer, transactionService, objects)

	// Agent: tool registry plus the pending-action store
	actionStore := tools.NewActionStore(tools.DefaultActionTTL)
	registry := tools.NewRegistry()
	registry.RegisterAll(tools.CalculatorTools()...)
	registry.RegisterAll(tools.KnowledgeTools(kb, govClient)...)
	registry.Register(tools.SearchTool(searchClient))
	registry.RegisterAll(tools.PrepareTools(actionStore, transactionService, planningStore, planningStore, planningStore)...)
	agentService := agent.New(gateway, registry, actionStore, kb, searchClient, ledgerStore)

	// Background maintenance: trend/budget reconciliation and action sweeping
	maintenance := service.NewMaintenanceService(analyticsService, actionStore)
	if err := maintenance.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start maintenance jobs")
	}
	defer maintenance.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		MaxAge:       86400,
	}))

	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	// Per-user rate limiting on the LLM-backed surfaces
	rateLimiter := middleware.NewRateLimiterWithConfig(int(cfg.RateLimit*60), cfg.RateLimitBurst)
	defer rateLimiter.Stop()
	rateLimited := middleware.RateLimitMiddleware(rateLimiter)

	// Register API routes
	handler.RegisterRoutes(
		e,
		rateLimited,
		handler.NewAgentHandler(agentService, receiptService, statementService),
		handler.NewCalculatorHandler(),
		handler.NewCategorizeHandler(categorizer),
		handler.NewTransactionHandler(transactionService),
		handler.NewBudgetHandler(budgetService),
		handler.NewGoalHandler(goalService),
		handler.NewPaymentHandler(paymentService),
		handler.NewMerchantRuleHandler(merchantRuleService),
		handler.NewAnalyticsHandler(analyticsService),
		handler.NewDashboardHandler(dashboardService),
		handler.NewBillingHandler(billingService),
		handler.NewBillSplitHandler(billSplitService),
		handler.NewBusinessHandler(businessService, brainstormService),
		handler.NewDocsHandler(milestoneService, analyticsService),
		handler.NewWebSocketHandler(hub),
	)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
