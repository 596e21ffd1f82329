package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes. The surface is rooted at / with
// no version prefix; the client identifies itself through user_id fields
// rather than an auth layer. rateLimited, when non-nil, guards the
// LLM-backed groups (agent, brainstorm, ideas).
func RegisterRoutes(
	e *echo.Echo,
	rateLimited echo.MiddlewareFunc,
	agentHandler *AgentHandler,
	calculatorHandler *CalculatorHandler,
	categorizeHandler *CategorizeHandler,
	transactionHandler *TransactionHandler,
	budgetHandler *BudgetHandler,
	goalHandler *GoalHandler,
	paymentHandler *PaymentHandler,
	merchantRuleHandler *MerchantRuleHandler,
	analyticsHandler *AnalyticsHandler,
	dashboardHandler *DashboardHandler,
	billingHandler *BillingHandler,
	billSplitHandler *BillSplitHandler,
	businessHandler *BusinessHandler,
	docsHandler *DocsHandler,
	wsHandler *WebSocketHandler,
) {
	var llmGuard []echo.MiddlewareFunc
	if rateLimited != nil {
		llmGuard = append(llmGuard, rateLimited)
	}

	// Agent
	agent := e.Group("/agent", llmGuard...)
	agent.POST("/chat", agentHandler.Chat)
	agent.POST("/agentic-chat", agentHandler.Chat)
	agent.POST("/confirm-action", agentHandler.ConfirmAction)
	agent.POST("/scan-document", agentHandler.ScanDocument)
	agent.POST("/scan-receipt", agentHandler.ScanReceipt)

	// Calculators
	calc := e.Group("/calculator")
	calc.POST("/sip", calculatorHandler.SIP)
	calc.POST("/goal-sip", calculatorHandler.GoalSIP)
	calc.POST("/emi", calculatorHandler.EMI)
	calc.POST("/fd", calculatorHandler.FD)
	calc.POST("/rd", calculatorHandler.RD)
	calc.POST("/lumpsum", calculatorHandler.Lumpsum)
	calc.POST("/cagr", calculatorHandler.CAGR)
	calc.POST("/compound-interest", calculatorHandler.CompoundInterest)
	calc.POST("/emergency-fund", calculatorHandler.EmergencyFund)
	calc.POST("/savings-rate", calculatorHandler.SavingsRate)
	calc.POST("/tax", calculatorHandler.Tax)

	// Categorization
	e.POST("/categorize", categorizeHandler.Categorize)
	e.POST("/categorize/batch", categorizeHandler.CategorizeBatch)

	// Transactions
	transactions := e.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/summary", transactionHandler.Summary)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Budgets
	budgets := e.Group("/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	// Goals
	goals := e.Group("/goals")
	goals.POST("", goalHandler.Create)
	goals.GET("", goalHandler.List)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)
	goals.POST("/:id/add-funds", goalHandler.AddFunds)

	// Scheduled payments
	payments := e.Group("/scheduled-payments")
	payments.POST("", paymentHandler.Create)
	payments.GET("", paymentHandler.List)
	payments.GET("/upcoming", paymentHandler.Upcoming)
	payments.PUT("/:id", paymentHandler.Update)
	payments.DELETE("/:id", paymentHandler.Delete)
	payments.POST("/:id/mark-paid", paymentHandler.MarkPaid)

	// Merchant rules
	rules := e.Group("/merchant-rules")
	rules.GET("", merchantRuleHandler.List)
	rules.POST("", merchantRuleHandler.Create)
	rules.DELETE("/:id", merchantRuleHandler.Delete)

	// Analytics
	analytics := e.Group("/analytics")
	analytics.GET("/health-score/:user_id", analyticsHandler.HealthScore)
	analytics.POST("/refresh/:user_id", analyticsHandler.Refresh)
	analytics.GET("/monthly/:user_id", analyticsHandler.Monthly)
	analytics.GET("/subscriptions/:user_id", analyticsHandler.Subscriptions)
	e.GET("/insights/daily/:user_id", analyticsHandler.DailyInsight)

	// Dashboard
	e.GET("/dashboard/:user_id", dashboardHandler.Get)

	// Vendors and invoicing
	vendors := e.Group("/vendors")
	vendors.POST("", billingHandler.CreateVendor)
	vendors.GET("", billingHandler.ListVendors)
	vendors.DELETE("/:id", billingHandler.DeleteVendor)
	vendors.POST("/:id/payments", billingHandler.RecordVendorPayment)
	vendors.GET("/:id/payments", billingHandler.ListVendorPayments)

	customers := e.Group("/customers")
	customers.POST("", billingHandler.CreateCustomer)
	customers.GET("", billingHandler.ListCustomers)

	invoices := e.Group("/invoices")
	invoices.POST("", billingHandler.CreateInvoice)
	invoices.GET("", billingHandler.ListInvoices)
	invoices.GET("/:id", billingHandler.GetInvoice)
	invoices.PATCH("/:id/status", billingHandler.UpdateInvoiceStatus)

	e.POST("/business-profile", billingHandler.SaveBusinessProfile)
	e.GET("/business-profile/:user_id", billingHandler.GetBusinessProfile)
	e.POST("/schemes/assess", billingHandler.AssessSchemes)

	// Bill splits
	splits := e.Group("/bill-splits")
	splits.POST("", billSplitHandler.Create)
	splits.GET("", billSplitHandler.List)
	splits.GET("/:id", billSplitHandler.Get)
	splits.POST("/:id/payments", billSplitHandler.MakePayment)

	// Mudra DPR and business ideation
	mudraDPR := e.Group("/mudra-dpr")
	mudraDPR.POST("/calculate", businessHandler.MudraCalculate)
	mudraDPR.POST("/whatif", businessHandler.MudraWhatIf)
	mudraDPR.POST("/narrative", businessHandler.MudraNarrative)
	mudraDPR.GET("/:user_id", businessHandler.ListMudraRuns)

	ideas := e.Group("/ideas", llmGuard...)
	ideas.POST("/evaluate", businessHandler.EvaluateIdea)
	ideas.GET("/:user_id", businessHandler.ListIdeaEvaluations)

	brainstorm := e.Group("/brainstorm", llmGuard...)
	brainstorm.POST("/chat", businessHandler.BrainstormChat)
	brainstorm.POST("/reverse", businessHandler.BrainstormReverse)
	brainstorm.POST("/canvas", businessHandler.BrainstormCanvas)

	// Gamification and analysis
	e.GET("/milestones/:user_id", docsHandler.Milestones)
	e.GET("/analysis/:user_id", docsHandler.AnalysisGate)
	e.POST("/analysis/:user_id", docsHandler.RunAnalysis)

	// WebSocket
	e.GET("/ws/:user_id", wsHandler.Connect)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
