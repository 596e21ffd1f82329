package tools

import (
	"context"
	"encoding/json"

	"github.com/arthamitra/arthamitra-backend/internal/finmath"
)

// CalculatorTools returns the pure calculator tools. They are
// deterministic and never require confirmation.
func CalculatorTools() []*Tool {
	return []*Tool{
		{
			Name:        "calculate_sip",
			Description: "Project the future value of a monthly SIP (systematic investment plan).",
			InputSchema: ObjectSchema(map[string]interface{}{
				"monthly_investment": NumberProperty("Monthly investment amount in rupees"),
				"annual_rate":        NumberProperty("Expected annual return in percent, e.g. 12"),
				"duration_months":    IntegerProperty("Investment duration in months"),
			}, "monthly_investment", "annual_rate", "duration_months"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Monthly float64 `json:"monthly_investment"`
					Rate    float64 `json:"annual_rate"`
					Months  int     `json:"duration_months"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_sip", "invalid arguments: "+err.Error())
				}
				if p.Monthly <= 0 || p.Months <= 0 {
					return Fail("calculate_sip", "monthly_investment and duration_months must be positive")
				}
				return &Result{Success: true, Action: "calculate_sip", Data: finmath.SIP(p.Monthly, p.Rate, p.Months)}
			},
		},
		{
			Name:        "calculate_goal_sip",
			Description: "Monthly SIP needed to reach a target amount in a given number of months.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"target_amount":   NumberProperty("Target corpus in rupees"),
				"annual_rate":     NumberProperty("Expected annual return in percent"),
				"duration_months": IntegerProperty("Months until the goal"),
			}, "target_amount", "annual_rate", "duration_months"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Target float64 `json:"target_amount"`
					Rate   float64 `json:"annual_rate"`
					Months int     `json:"duration_months"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_goal_sip", "invalid arguments: "+err.Error())
				}
				if p.Target <= 0 || p.Months <= 0 {
					return Fail("calculate_goal_sip", "target_amount and duration_months must be positive")
				}
				return &Result{Success: true, Action: "calculate_goal_sip", Data: finmath.GoalSIP(p.Target, p.Rate, p.Months)}
			},
		},
		{
			Name:        "calculate_emi",
			Description: "Reducing-balance EMI for a loan: monthly installment, total payment, total interest.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"principal":     NumberProperty("Loan principal in rupees"),
				"annual_rate":   NumberProperty("Annual interest rate in percent"),
				"tenure_months": IntegerProperty("Loan tenure in months"),
			}, "principal", "annual_rate", "tenure_months"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Principal float64 `json:"principal"`
					Rate      float64 `json:"annual_rate"`
					Months    int     `json:"tenure_months"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_emi", "invalid arguments: "+err.Error())
				}
				if p.Principal <= 0 || p.Months <= 0 {
					return Fail("calculate_emi", "principal and tenure_months must be positive")
				}
				return &Result{Success: true, Action: "calculate_emi", Data: finmath.EMI(p.Principal, p.Rate, p.Months)}
			},
		},
		{
			Name:        "calculate_fd",
			Description: "Fixed deposit maturity with quarterly compounding.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"principal":   NumberProperty("Deposit amount in rupees"),
				"annual_rate": NumberProperty("Annual interest rate in percent"),
				"years":       NumberProperty("Tenure in years, fractions allowed"),
			}, "principal", "annual_rate", "years"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Principal float64 `json:"principal"`
					Rate      float64 `json:"annual_rate"`
					Years     float64 `json:"years"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_fd", "invalid arguments: "+err.Error())
				}
				if p.Principal <= 0 || p.Years <= 0 {
					return Fail("calculate_fd", "principal and years must be positive")
				}
				return &Result{Success: true, Action: "calculate_fd", Data: finmath.FD(p.Principal, p.Rate, p.Years)}
			},
		},
		{
			Name:        "calculate_rd",
			Description: "Recurring deposit maturity for a fixed monthly deposit.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"monthly_deposit": NumberProperty("Monthly deposit in rupees"),
				"annual_rate":     NumberProperty("Annual interest rate in percent"),
				"months":          IntegerProperty("Number of monthly deposits"),
			}, "monthly_deposit", "annual_rate", "months"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Monthly float64 `json:"monthly_deposit"`
					Rate    float64 `json:"annual_rate"`
					Months  int     `json:"months"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_rd", "invalid arguments: "+err.Error())
				}
				if p.Monthly <= 0 || p.Months <= 0 {
					return Fail("calculate_rd", "monthly_deposit and months must be positive")
				}
				return &Result{Success: true, Action: "calculate_rd", Data: finmath.RD(p.Monthly, p.Rate, p.Months)}
			},
		},
		{
			Name:        "calculate_lumpsum",
			Description: "Future value of a one-time investment compounded annually.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"amount":      NumberProperty("One-time investment in rupees"),
				"annual_rate": NumberProperty("Expected annual return in percent"),
				"years":       NumberProperty("Investment horizon in years"),
			}, "amount", "annual_rate", "years"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Amount float64 `json:"amount"`
					Rate   float64 `json:"annual_rate"`
					Years  float64 `json:"years"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_lumpsum", "invalid arguments: "+err.Error())
				}
				if p.Amount <= 0 || p.Years <= 0 {
					return Fail("calculate_lumpsum", "amount and years must be positive")
				}
				return &Result{Success: true, Action: "calculate_lumpsum", Data: finmath.Lumpsum(p.Amount, p.Rate, p.Years)}
			},
		},
		{
			Name:        "calculate_cagr",
			Description: "Compound annual growth rate between an initial and final value.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"initial_value": NumberProperty("Starting value in rupees"),
				"final_value":   NumberProperty("Ending value in rupees"),
				"years":         NumberProperty("Years between the two values"),
			}, "initial_value", "final_value", "years"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Initial float64 `json:"initial_value"`
					Final   float64 `json:"final_value"`
					Years   float64 `json:"years"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_cagr", "invalid arguments: "+err.Error())
				}
				if p.Initial <= 0 || p.Years <= 0 {
					return Fail("calculate_cagr", "initial_value and years must be positive")
				}
				return &Result{Success: true, Action: "calculate_cagr", Data: map[string]float64{"cagr_pct": finmath.CAGR(p.Initial, p.Final, p.Years)}}
			},
		},
		{
			Name:        "calculate_compound_interest",
			Description: "Compound interest with a configurable compounding frequency.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"principal":          NumberProperty("Principal in rupees"),
				"annual_rate":        NumberProperty("Annual interest rate in percent"),
				"years":              NumberProperty("Duration in years"),
				"compounds_per_year": IntegerProperty("Compounding periods per year, default 1"),
			}, "principal", "annual_rate", "years"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Principal float64 `json:"principal"`
					Rate      float64 `json:"annual_rate"`
					Years     float64 `json:"years"`
					Compounds int     `json:"compounds_per_year"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_compound_interest", "invalid arguments: "+err.Error())
				}
				if p.Principal <= 0 || p.Years <= 0 {
					return Fail("calculate_compound_interest", "principal and years must be positive")
				}
				return &Result{Success: true, Action: "calculate_compound_interest", Data: finmath.CompoundInterest(p.Principal, p.Rate, p.Years, p.Compounds)}
			},
		},
		{
			Name:        "calculate_emergency_fund",
			Description: "Recommended emergency corpus from monthly expenses (default 6 months).",
			InputSchema: ObjectSchema(map[string]interface{}{
				"monthly_expenses": NumberProperty("Average monthly expenses in rupees"),
				"months":           IntegerProperty("Months of cover, default 6"),
			}, "monthly_expenses"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Expenses float64 `json:"monthly_expenses"`
					Months   int     `json:"months"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_emergency_fund", "invalid arguments: "+err.Error())
				}
				if p.Expenses <= 0 {
					return Fail("calculate_emergency_fund", "monthly_expenses must be positive")
				}
				return &Result{Success: true, Action: "calculate_emergency_fund", Data: map[string]float64{"recommended_fund": finmath.EmergencyFund(p.Expenses, p.Months)}}
			},
		},
		{
			Name:        "calculate_savings_rate",
			Description: "Savings as a percentage of income.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"income":   NumberProperty("Monthly or annual income in rupees"),
				"expenses": NumberProperty("Expenses over the same period in rupees"),
			}, "income", "expenses"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Income   float64 `json:"income"`
					Expenses float64 `json:"expenses"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_savings_rate", "invalid arguments: "+err.Error())
				}
				if p.Income <= 0 {
					return Fail("calculate_savings_rate", "income must be positive")
				}
				return &Result{Success: true, Action: "calculate_savings_rate", Data: map[string]float64{"savings_rate_pct": finmath.SavingsRate(p.Income, p.Expenses)}}
			},
		},
		{
			Name:        "calculate_tax",
			Description: "Indian income tax under the old and new regimes for FY 2024-25, with a recommendation.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"annual_income": NumberProperty("Gross annual income in rupees"),
				"deductions":    NumberProperty("Total old-regime deductions (80C, 80D etc.) in rupees"),
			}, "annual_income"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Income     float64 `json:"annual_income"`
					Deductions float64 `json:"deductions"`
				}
				if err := json.Unmarshal(input, &p); err != nil {
					return Fail("calculate_tax", "invalid arguments: "+err.Error())
				}
				if p.Income <= 0 {
					return Fail("calculate_tax", "annual_income must be positive")
				}
				return &Result{Success: true, Action: "calculate_tax", Data: finmath.IncomeTax(p.Income, p.Deductions)}
			},
		},
	}
}

// CalculatorToolNames lists the calculator tool names for path restriction.
func CalculatorToolNames() []string {
	names := make([]string, 0, 11)
	for _, t := range CalculatorTools() {
		names = append(names, t.Name)
	}
	return names
}
