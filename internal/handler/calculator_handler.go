package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/finmath"
	"github.com/labstack/echo/v4"
)

// CalculatorHandler exposes the closed-form finance calculators. All
// endpoints are stateless POSTs over JSON.
type CalculatorHandler struct{}

// NewCalculatorHandler creates a new CalculatorHandler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// SIPRequest represents a SIP projection request
type SIPRequest struct {
	MonthlyInvestment float64 `json:"monthly_investment"`
	AnnualRate        float64 `json:"annual_rate"`
	DurationMonths    int     `json:"duration_months"`
}

// SIP handles POST /calculator/sip
func (h *CalculatorHandler) SIP(c echo.Context) error {
	var req SIPRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.MonthlyInvestment <= 0 || req.DurationMonths <= 0 {
		return NewValidationError(c, "monthly_investment and duration_months must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.SIP(req.MonthlyInvestment, req.AnnualRate, req.DurationMonths))
}

// GoalSIPRequest represents a goal-seek SIP request
type GoalSIPRequest struct {
	TargetAmount   float64 `json:"target_amount"`
	AnnualRate     float64 `json:"annual_rate"`
	DurationMonths int     `json:"duration_months"`
}

// GoalSIP handles POST /calculator/goal-sip
func (h *CalculatorHandler) GoalSIP(c echo.Context) error {
	var req GoalSIPRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.TargetAmount <= 0 || req.DurationMonths <= 0 {
		return NewValidationError(c, "target_amount and duration_months must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.GoalSIP(req.TargetAmount, req.AnnualRate, req.DurationMonths))
}

// EMIRequest represents a loan amortization request
type EMIRequest struct {
	Principal    float64 `json:"principal"`
	AnnualRate   float64 `json:"annual_rate"`
	TenureMonths int     `json:"tenure_months"`
}

// EMI handles POST /calculator/emi
func (h *CalculatorHandler) EMI(c echo.Context) error {
	var req EMIRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Principal <= 0 || req.TenureMonths <= 0 {
		return NewValidationError(c, "principal and tenure_months must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.EMI(req.Principal, req.AnnualRate, req.TenureMonths))
}

// FDRequest represents a fixed deposit request
type FDRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Years      float64 `json:"years"`
}

// FD handles POST /calculator/fd
func (h *CalculatorHandler) FD(c echo.Context) error {
	var req FDRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Principal <= 0 || req.Years <= 0 {
		return NewValidationError(c, "principal and years must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.FD(req.Principal, req.AnnualRate, req.Years))
}

// RDRequest represents a recurring deposit request
type RDRequest struct {
	MonthlyDeposit float64 `json:"monthly_deposit"`
	AnnualRate     float64 `json:"annual_rate"`
	Months         int     `json:"months"`
}

// RD handles POST /calculator/rd
func (h *CalculatorHandler) RD(c echo.Context) error {
	var req RDRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.MonthlyDeposit <= 0 || req.Months <= 0 {
		return NewValidationError(c, "monthly_deposit and months must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.RD(req.MonthlyDeposit, req.AnnualRate, req.Months))
}

// LumpsumRequest represents a one-time investment request
type LumpsumRequest struct {
	Amount     float64 `json:"amount"`
	AnnualRate float64 `json:"annual_rate"`
	Years      float64 `json:"years"`
}

// Lumpsum handles POST /calculator/lumpsum
func (h *CalculatorHandler) Lumpsum(c echo.Context) error {
	var req LumpsumRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Amount <= 0 || req.Years <= 0 {
		return NewValidationError(c, "amount and years must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.Lumpsum(req.Amount, req.AnnualRate, req.Years))
}

// CAGRRequest represents a compound annual growth rate request
type CAGRRequest struct {
	InitialValue float64 `json:"initial_value"`
	FinalValue   float64 `json:"final_value"`
	Years        float64 `json:"years"`
}

// CAGR handles POST /calculator/cagr
func (h *CalculatorHandler) CAGR(c echo.Context) error {
	var req CAGRRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.InitialValue <= 0 || req.FinalValue <= 0 || req.Years <= 0 {
		return NewValidationError(c, "initial_value, final_value and years must be positive", nil)
	}
	return c.JSON(http.StatusOK, map[string]float64{
		"cagr": finmath.CAGR(req.InitialValue, req.FinalValue, req.Years),
	})
}

// CompoundInterestRequest represents a compound interest request
type CompoundInterestRequest struct {
	Principal        float64 `json:"principal"`
	AnnualRate       float64 `json:"annual_rate"`
	Years            float64 `json:"years"`
	CompoundsPerYear int     `json:"compounds_per_year"`
}

// CompoundInterest handles POST /calculator/compound-interest
func (h *CalculatorHandler) CompoundInterest(c echo.Context) error {
	var req CompoundInterestRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Principal <= 0 || req.Years <= 0 {
		return NewValidationError(c, "principal and years must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.CompoundInterest(req.Principal, req.AnnualRate, req.Years, req.CompoundsPerYear))
}

// EmergencyFundRequest represents an emergency fund sizing request
type EmergencyFundRequest struct {
	MonthlyExpenses float64 `json:"monthly_expenses"`
	Months          int     `json:"months"`
}

// EmergencyFund handles POST /calculator/emergency-fund
func (h *CalculatorHandler) EmergencyFund(c echo.Context) error {
	var req EmergencyFundRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.MonthlyExpenses <= 0 {
		return NewValidationError(c, "monthly_expenses must be positive", nil)
	}
	return c.JSON(http.StatusOK, map[string]float64{
		"target_amount": finmath.EmergencyFund(req.MonthlyExpenses, req.Months),
	})
}

// SavingsRateRequest represents a savings rate request
type SavingsRateRequest struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// SavingsRate handles POST /calculator/savings-rate
func (h *CalculatorHandler) SavingsRate(c echo.Context) error {
	var req SavingsRateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Income <= 0 {
		return NewValidationError(c, "income must be positive", nil)
	}
	return c.JSON(http.StatusOK, map[string]float64{
		"savings_rate": finmath.SavingsRate(req.Income, req.Expenses),
	})
}

// TaxRequest represents an income tax comparison request
type TaxRequest struct {
	AnnualIncome float64 `json:"annual_income"`
	Deductions   float64 `json:"deductions"`
}

// Tax handles POST /calculator/tax
func (h *CalculatorHandler) Tax(c echo.Context) error {
	var req TaxRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.AnnualIncome <= 0 {
		return NewValidationError(c, "annual_income must be positive", nil)
	}
	return c.JSON(http.StatusOK, finmath.IncomeTax(req.AnnualIncome, req.Deductions))
}
